package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Store persists write-once binary artifacts (check-in photos, payslips)
// and returns an opaque reference for later retrieval.
type Store interface {
	Save(ctx context.Context, ownerID, kind, ext string, data []byte) (string, error)
	Read(ctx context.Context, ref string) ([]byte, error)
}

type localStore struct {
	root   string
	logger *zap.Logger
}

func NewLocalStore(root string, logger ...*zap.Logger) (Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	l := zap.L().Named("storage.local")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &localStore{root: root, logger: l}, nil
}

// Save never overwrites: the reference embeds a nanosecond timestamp, and
// the file is created with O_EXCL.
func (s *localStore) Save(ctx context.Context, ownerID, kind, ext string, data []byte) (string, error) {
	ref := fmt.Sprintf("%s/%s-%d.%s", ownerID, kind, time.Now().UnixNano(), ext)

	path := filepath.Join(s.root, filepath.FromSlash(ref))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		os.Remove(path)
		return "", err
	}

	s.logger.Debug("artifact stored", zap.String("ref", ref), zap.Int("bytes", len(data)))
	return ref, nil
}

func (s *localStore) Read(ctx context.Context, ref string) ([]byte, error) {
	clean := filepath.Clean(filepath.FromSlash(ref))
	if filepath.IsAbs(clean) || clean == ".." || len(clean) > 1 && clean[:2] == ".." {
		return nil, os.ErrNotExist
	}
	return os.ReadFile(filepath.Join(s.root, clean))
}
