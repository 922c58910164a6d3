// Package matching ranks candidate items against a query vector by cosine
// similarity.
package matching

import (
	"math"

	"github.com/jonathan/resume-match/internal/types"
)

// Cosine computes the cosine similarity of two vectors: dot(a,b) divided by
// the product of their magnitudes, in [-1, 1]. Invalid input — an empty
// vector, mismatched dimensions, or a zero-magnitude vector — yields 0
// rather than an error. The zero is a "no signal" sentinel; it is
// indistinguishable from true orthogonality, a known ambiguity callers
// accept.
func Cosine(a, b types.Vector) float64 {
	if a.IsZero() || b.IsZero() || a.Dimension() != b.Dimension() {
		return 0
	}

	var dot, magA, magB float64
	for i, x := range a.Values {
		y := b.Values[i]
		dot += x * y
		magA += x * x
		magB += y * y
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
