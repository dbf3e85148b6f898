package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalStore_SaveAndRead(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	assert.NoError(t, err)
	ctx := context.Background()

	ref, err := store.Save(ctx, "emp-1", "checkin", "jpg", []byte("image-bytes"))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "emp-1/checkin-"))
	assert.True(t, strings.HasSuffix(ref, ".jpg"))

	data, err := store.Read(ctx, ref)
	assert.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)
}

func TestLocalStore_RefsAreUnique(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	assert.NoError(t, err)
	ctx := context.Background()

	a, err := store.Save(ctx, "emp-1", "checkin", "jpg", []byte("a"))
	assert.NoError(t, err)
	b, err := store.Save(ctx, "emp-1", "checkin", "jpg", []byte("b"))
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestLocalStore_ReadRejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	assert.NoError(t, err)

	_, err = store.Read(context.Background(), "../outside")
	assert.Error(t, err)
}
