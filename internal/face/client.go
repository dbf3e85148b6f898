package face

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"go-timekeep/internal/config"
	faceerrors "go-timekeep/internal/face/errors"
)

// httpVerifier calls the external detection service over plain HTTP. Any
// transport failure, including a deadline hit, is reported as a verification
// failure rather than propagated raw.
type httpVerifier struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewHTTPVerifier(cfg config.FaceConfig, logger ...*zap.Logger) Verifier {
	l := zap.L().Named("face.verifier")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &httpVerifier{
		baseURL: cfg.ServiceURL,
		client:  &http.Client{Timeout: cfg.RequestTimeout},
		logger:  l,
	}
}

type detectResponse struct {
	Faces []struct {
		Descriptor []float64 `json:"descriptor"`
	} `json:"faces"`
}

func (v *httpVerifier) ExtractDescriptor(ctx context.Context, image []byte) (Descriptor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/v1/detect", bytes.NewReader(image))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Warn("face detection request failed", zap.Error(err))
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, faceerrors.ErrVerificationFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.logger.Warn("face detection returned non-200", zap.Int("status", resp.StatusCode))
		return nil, faceerrors.ErrVerificationFailed
	}

	var out detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, faceerrors.ErrVerificationFailed
	}
	if len(out.Faces) == 0 || len(out.Faces[0].Descriptor) == 0 {
		return nil, faceerrors.ErrNoFaceDetected
	}
	return out.Faces[0].Descriptor, nil
}

// fileVerifier reads descriptors from pre-computed JSON files keyed by a
// digest of the image. Only used in local development where the detection
// service is not running.
type fileVerifier struct {
	dir string
}

func NewFileVerifier(dir string) Verifier {
	return &fileVerifier{dir: dir}
}

func (v *fileVerifier) ExtractDescriptor(ctx context.Context, image []byte) (Descriptor, error) {
	sum := sha256.Sum256(image)
	path := fmt.Sprintf("%s/%x.json", v.dir, sum[:8])
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, faceerrors.ErrNoFaceDetected
	}
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, faceerrors.ErrVerificationFailed
	}
	return d, nil
}
