package face

import "math"

// euclideanMatcher accepts a probe when its distance to any enrolled
// descriptor is at or below the threshold. 0.6 is the conventional cut for
// 128-dimension embeddings.
type euclideanMatcher struct {
	threshold float64
}

func NewEuclideanMatcher(threshold float64) Matcher {
	return &euclideanMatcher{threshold: threshold}
}

func (m *euclideanMatcher) Match(probe Descriptor, enrolled []Descriptor) bool {
	for _, candidate := range enrolled {
		if d, ok := distance(probe, candidate); ok && d <= m.threshold {
			return true
		}
	}
	return false
}

func distance(a, b Descriptor) (float64, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum), true
}
