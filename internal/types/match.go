package types

// Vector is a fixed-dimension embedding vector tagged with the model that
// produced it. Vectors compared to one another must share dimensionality.
type Vector struct {
	Values []float64 `json:"values"`
	Model  string    `json:"model,omitempty"`
}

// Dimension returns the number of components in the vector.
func (v Vector) Dimension() int { return len(v.Values) }

// IsZero reports whether the vector carries no components.
func (v Vector) IsZero() bool { return len(v.Values) == 0 }

// Candidate pairs an opaque caller-supplied item (job posting, blog post)
// with its embedding vector. Candidates are supplied fresh on every ranking
// call; no candidate state is held between calls.
type Candidate struct {
	ID     string
	Item   any
	Vector Vector
}

// MatchResult is a candidate annotated with its cosine similarity to the
// query and its rank position. Results are ordered strictly descending by
// similarity; ties keep the input order.
type MatchResult struct {
	Candidate  Candidate `json:"-"`
	ID         string    `json:"id"`
	Similarity float64   `json:"similarity"`
	Rank       int       `json:"rank"`
}
