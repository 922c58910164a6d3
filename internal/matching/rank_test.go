package matching

import (
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-match/internal/types"
)

func vec(values ...float64) types.Vector {
	return types.Vector{Values: values}
}

func cand(id string, values ...float64) types.Candidate {
	return types.Candidate{ID: id, Vector: vec(values...)}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name     string
		a, b     types.Vector
		expected float64
	}{
		{"identical unit vectors", vec(1, 0), vec(1, 0), 1},
		{"orthogonal", vec(1, 0), vec(0, 1), 0},
		{"opposite", vec(1, 0), vec(-1, 0), -1},
		{"scaled copies align", vec(1, 2, 3), vec(2, 4, 6), 1},
		{"empty first input", vec(), vec(1, 0), 0},
		{"empty second input", vec(1, 0), vec(), 0},
		{"both empty", vec(), vec(), 0},
		{"dimension mismatch", vec(1, 0), vec(1, 0, 0), 0},
		{"zero magnitude", vec(0, 0), vec(1, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Cosine(tt.a, tt.b), 1e-12)
		})
	}
}

func TestCosineSelfSimilarity(t *testing.T) {
	v := vec(0.3, -1.7, 2.2, 0.01)
	assert.InDelta(t, 1.0, Cosine(v, v), 1e-12)
}

func TestCosineSymmetry(t *testing.T) {
	a := vec(0.5, 1.5, -2)
	b := vec(3, -1, 0.25)
	assert.Equal(t, Cosine(a, b), Cosine(b, a))
}

func TestRankThresholdAndExclusion(t *testing.T) {
	// Candidate 2 scores 0 (below threshold); candidate 3 has an empty
	// vector and is excluded outright.
	candidates := []types.Candidate{
		cand("1", 1, 0),
		cand("2", 0, 1),
		cand("3"),
	}

	results, err := Rank(vec(1, 0), candidates, SearchOptions())
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].ID)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-12)
	assert.Equal(t, 0, results[0].Rank)
}

func TestRankSortedDescendingStableTies(t *testing.T) {
	candidates := []types.Candidate{
		cand("low", 1, 10),
		cand("tie-a", 1, 1),
		cand("high", 1, 0),
		cand("tie-b", 2, 2), // same direction as tie-a
	}

	results, err := Rank(vec(1, 0), candidates, Options{})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.True(t, sort.SliceIsSorted(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	}))
	assert.Equal(t, "high", results[0].ID)
	// Equal scores keep input order: tie-a appeared before tie-b.
	assert.Equal(t, "tie-a", results[1].ID)
	assert.Equal(t, "tie-b", results[2].ID)

	for i, r := range results {
		assert.Equal(t, i, r.Rank)
	}
}

func TestRankThresholdIsExclusive(t *testing.T) {
	// A result exactly at the threshold is dropped.
	candidates := []types.Candidate{cand("exact", 1, 0)}
	results, err := Rank(vec(1, 0), candidates, Options{MinThreshold: 1.0, HasThreshold: true})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRankTopNTruncation(t *testing.T) {
	candidates := make([]types.Candidate, 15)
	for i := range candidates {
		// Increasing angle from the query means decreasing similarity.
		angle := float64(i) * 0.09
		candidates[i] = cand(fmt.Sprintf("c%d", i), math.Cos(angle), math.Sin(angle))
	}

	results, err := Rank(vec(1, 0), candidates, TopNOptions(10))
	require.NoError(t, err)
	require.Len(t, results, 10)

	// Top 10 by true cosine similarity are the 10 smallest angles.
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("c%d", i), r.ID)
		assert.Equal(t, i, r.Rank)
	}
}

func TestRankTopNFewerCandidatesThanN(t *testing.T) {
	results, err := Rank(vec(1, 0), []types.Candidate{cand("only", 1, 1)}, TopNOptions(10))
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestRankDimensionMismatchFails(t *testing.T) {
	candidates := []types.Candidate{cand("bad", 1, 0, 0)}
	_, err := Rank(vec(1, 0), candidates, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension")
}

func TestRankEmptyQuery(t *testing.T) {
	_, err := Rank(vec(), []types.Candidate{cand("a", 1)}, Options{})
	assert.Error(t, err)
}

func TestRankParallelPathMatchesSequential(t *testing.T) {
	candidates := make([]types.Candidate, parallelCutoff+50)
	for i := range candidates {
		angle := float64(i%97) * 0.03
		candidates[i] = cand(fmt.Sprintf("c%d", i), math.Cos(angle), math.Sin(angle))
	}

	parallel, err := Rank(vec(1, 0), candidates, Options{})
	require.NoError(t, err)

	sequential, err := Rank(vec(1, 0), candidates[:parallelCutoff-1], Options{})
	require.NoError(t, err)

	// Scores agree for the shared prefix ordering by similarity.
	require.NotEmpty(t, parallel)
	require.NotEmpty(t, sequential)
	assert.Equal(t, sequential[0].Similarity, parallel[0].Similarity)
	assert.True(t, sort.SliceIsSorted(parallel, func(i, j int) bool {
		return parallel[i].Similarity > parallel[j].Similarity
	}))
}
