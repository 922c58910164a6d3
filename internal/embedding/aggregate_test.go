package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-match/internal/types"
)

func vec(values ...float64) types.Vector {
	return types.Vector{Values: values, Model: DefaultModel}
}

func TestAggregateFirst(t *testing.T) {
	vectors := []types.Vector{vec(1, 2), vec(3, 4), vec(5, 6)}

	got, err := Aggregate(vectors, AggregateFirst)
	require.NoError(t, err)
	assert.Equal(t, vec(1, 2), got)

	// Empty policy defaults to first-chunk.
	got, err = Aggregate(vectors, "")
	require.NoError(t, err)
	assert.Equal(t, vec(1, 2), got)
}

func TestAggregateMean(t *testing.T) {
	vectors := []types.Vector{vec(1, 2), vec(3, 6)}

	got, err := Aggregate(vectors, AggregateMean)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4}, got.Values)
	assert.Equal(t, DefaultModel, got.Model)
}

func TestAggregateMeanDimensionMismatch(t *testing.T) {
	vectors := []types.Vector{vec(1, 2), vec(3)}

	_, err := Aggregate(vectors, AggregateMean)
	assert.Error(t, err)
}

func TestAggregateEmpty(t *testing.T) {
	_, err := Aggregate(nil, AggregateFirst)
	var svcErr *ServiceError
	assert.ErrorAs(t, err, &svcErr)
}

func TestAggregateUnknownPolicy(t *testing.T) {
	_, err := Aggregate([]types.Vector{vec(1)}, Aggregation("median"))
	assert.Error(t, err)
}

func TestNewOpenAIEmbedderRequiresKey(t *testing.T) {
	_, err := NewOpenAIEmbedder("", "")
	var confErr *ConfigurationError
	assert.ErrorAs(t, err, &confErr)
}
