package face

import "context"

// Descriptor is the embedding vector produced for one detected face.
type Descriptor []float64

//go:generate mockgen -source=verifier.go -destination=mock/verifier_mock.go -package=mock
type Verifier interface {
	// ExtractDescriptor runs detection on the image and returns the
	// descriptor of the single detected face.
	ExtractDescriptor(ctx context.Context, image []byte) (Descriptor, error)
}

// Matcher decides whether a probe descriptor belongs to the person whose
// enrolled descriptors are given.
type Matcher interface {
	Match(probe Descriptor, enrolled []Descriptor) bool
}
