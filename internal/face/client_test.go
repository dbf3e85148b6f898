package face

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-timekeep/internal/config"
	faceerrors "go-timekeep/internal/face/errors"
)

func newTestVerifier(t *testing.T, handler http.HandlerFunc, timeout time.Duration) Verifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPVerifier(config.FaceConfig{ServiceURL: srv.URL, RequestTimeout: timeout})
}

func TestHTTPVerifier_ExtractDescriptor(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns first detected descriptor", func(t *testing.T) {
		v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"faces":[{"descriptor":[0.1,0.2]},{"descriptor":[0.9,0.9]}]}`))
		}, time.Second)

		d, err := v.ExtractDescriptor(ctx, []byte("img"))
		assert.NoError(t, err)
		assert.Equal(t, Descriptor{0.1, 0.2}, d)
	})

	t.Run("Empty face list means no face detected", func(t *testing.T) {
		v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"faces":[]}`))
		}, time.Second)

		_, err := v.ExtractDescriptor(ctx, []byte("img"))
		assert.ErrorIs(t, err, faceerrors.ErrNoFaceDetected)
	})

	t.Run("Upstream error is a verification failure", func(t *testing.T) {
		v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}, time.Second)

		_, err := v.ExtractDescriptor(ctx, []byte("img"))
		assert.ErrorIs(t, err, faceerrors.ErrVerificationFailed)
	})

	t.Run("Timeout is a verification failure", func(t *testing.T) {
		v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}, 20*time.Millisecond)

		_, err := v.ExtractDescriptor(ctx, []byte("img"))
		assert.ErrorIs(t, err, faceerrors.ErrVerificationFailed)
	})
}
