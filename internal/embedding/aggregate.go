package embedding

import (
	"fmt"

	"github.com/jonathan/resume-match/internal/types"
)

// Aggregation selects how multiple chunk vectors collapse into a single
// representative vector for a whole document.
type Aggregation string

const (
	// AggregateFirst uses the first chunk's vector as the representative.
	// A resume's opening chunk carries the densest signal (name, title,
	// summary, skills), and this matches the vectors already stored for
	// the candidate corpus.
	AggregateFirst Aggregation = "first"
	// AggregateMean element-wise averages all chunk vectors.
	AggregateMean Aggregation = "mean"
)

// Aggregate collapses chunk vectors into one representative vector using
// the given policy. All vectors must share dimensionality.
func Aggregate(vectors []types.Vector, policy Aggregation) (types.Vector, error) {
	if len(vectors) == 0 {
		return types.Vector{}, &ServiceError{Message: "no vectors to aggregate"}
	}

	switch policy {
	case AggregateFirst, "":
		return vectors[0], nil
	case AggregateMean:
		return meanVector(vectors)
	default:
		return types.Vector{}, fmt.Errorf("unknown aggregation policy %q", policy)
	}
}

func meanVector(vectors []types.Vector) (types.Vector, error) {
	dim := vectors[0].Dimension()
	sum := make([]float64, dim)
	for _, v := range vectors {
		if v.Dimension() != dim {
			return types.Vector{}, fmt.Errorf(
				"cannot aggregate vectors of dimension %d and %d", dim, v.Dimension())
		}
		for i, x := range v.Values {
			sum[i] += x
		}
	}
	n := float64(len(vectors))
	for i := range sum {
		sum[i] /= n
	}
	return types.Vector{Values: sum, Model: vectors[0].Model}, nil
}
