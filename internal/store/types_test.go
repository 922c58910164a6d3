package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJobCandidateCarriesVector(t *testing.T) {
	job := JobPosting{
		ID:        uuid.New(),
		Title:     "Backend Engineer",
		Embedding: []float64{0.1, 0.2},
		Model:     "text-embedding-ada-002",
	}

	c := job.Candidate()
	assert.Equal(t, job.ID.String(), c.ID)
	assert.Equal(t, []float64{0.1, 0.2}, c.Vector.Values)
	assert.Equal(t, "text-embedding-ada-002", c.Vector.Model)
	assert.Same(t, &job, c.Item)
}

func TestUnembeddedJobYieldsZeroVector(t *testing.T) {
	job := JobPosting{ID: uuid.New(), Title: "No Vector Yet"}

	c := job.Candidate()
	assert.True(t, c.Vector.IsZero())
}

func TestJobCandidatesPreserveOrder(t *testing.T) {
	jobs := []JobPosting{
		{ID: uuid.New(), Embedding: []float64{1}},
		{ID: uuid.New(), Embedding: []float64{2}},
	}

	candidates := JobCandidates(jobs)
	assert.Len(t, candidates, 2)
	assert.Equal(t, jobs[0].ID.String(), candidates[0].ID)
	assert.Equal(t, jobs[1].ID.String(), candidates[1].ID)
}

func TestEmbeddingRoundTrip(t *testing.T) {
	data, err := marshalEmbedding([]float64{0.5, -0.25})
	assert.NoError(t, err)

	var out []float64
	assert.NoError(t, unmarshalEmbedding(data, &out))
	assert.Equal(t, []float64{0.5, -0.25}, out)
}

func TestNilEmbeddingStaysNil(t *testing.T) {
	data, err := marshalEmbedding(nil)
	assert.NoError(t, err)
	assert.Nil(t, data)

	var out []float64
	assert.NoError(t, unmarshalEmbedding(nil, &out))
	assert.Nil(t, out)
}
