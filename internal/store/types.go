package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-match/internal/types"
)

// Corpus kind constants
const (
	KindJob  = "job"
	KindBlog = "blog"
)

// JobPosting is a job in the match corpus. Embedding holds the posting's
// representative vector; a nil embedding means the posting has not been
// embedded yet and is excluded from matching.
type JobPosting struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description"`
	Embedding   []float64 `json:"-"`
	Model       string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// BlogPost is a career article in the match corpus
type BlogPost struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Summary   string    `json:"summary,omitempty"`
	Embedding []float64 `json:"-"`
	Model     string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Recommendation is one ranked entry in a user's current recommendation set
type Recommendation struct {
	JobID      uuid.UUID `json:"job_id"`
	Rank       int       `json:"rank"`
	Similarity float64   `json:"similarity"`
}

// Candidate converts the posting into a matching candidate. Postings
// without an embedding yield a zero vector, which ranking excludes.
func (p *JobPosting) Candidate() types.Candidate {
	return types.Candidate{
		ID:     p.ID.String(),
		Item:   p,
		Vector: types.Vector{Values: p.Embedding, Model: p.Model},
	}
}

// Candidate converts the blog post into a matching candidate.
func (b *BlogPost) Candidate() types.Candidate {
	return types.Candidate{
		ID:     b.ID.String(),
		Item:   b,
		Vector: types.Vector{Values: b.Embedding, Model: b.Model},
	}
}

// JobCandidates converts a posting list for ranking.
func JobCandidates(jobs []JobPosting) []types.Candidate {
	out := make([]types.Candidate, len(jobs))
	for i := range jobs {
		out[i] = jobs[i].Candidate()
	}
	return out
}

// BlogCandidates converts a blog list for ranking.
func BlogCandidates(blogs []BlogPost) []types.Candidate {
	out := make([]types.Candidate, len(blogs))
	for i := range blogs {
		out[i] = blogs[i].Candidate()
	}
	return out
}
