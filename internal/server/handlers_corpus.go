package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-match/internal/store"
)

type createJobRequest struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description" validate:"required"`
}

type createBlogRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type recommendRequest struct {
	ResumeText string `json:"resumeText" validate:"required"`
	N          int    `json:"n,omitempty" validate:"omitempty,min=1,max=100"`
}

// handleCreateJob stores a job posting, embedding its description so it
// participates in matching immediately.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := s.upstreamContext(r)
	defer cancel()

	vector, err := s.matcher.Embed(ctx, req.Description)
	if err != nil {
		s.writeError(w, err)
		return
	}

	job := &store.JobPosting{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Description: req.Description,
		Embedding:   vector.Values,
		Model:       vector.Model,
	}
	id, err := s.corpus.SaveJob(ctx, job)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.corpus.ListJobs(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// pathID parses the {id} path segment as a UUID, writing a 400 response
// when it is malformed.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "id", Message: "must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	job, err := s.corpus.GetJob(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if job == nil {
		s.writeError(w, &ErrNotFound{Resource: "job posting", ID: id.String()})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"job": job})
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.corpus.DeleteJob(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleReembedJob recomputes a posting's embedding from its stored
// description. Useful after switching embedding model or chunk
// aggregation policy, which leaves stored vectors incomparable to
// fresh query vectors.
func (s *Server) handleReembedJob(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := s.upstreamContext(r)
	defer cancel()

	job, err := s.corpus.GetJob(ctx, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if job == nil {
		s.writeError(w, &ErrNotFound{Resource: "job posting", ID: id.String()})
		return
	}

	vector, err := s.matcher.Embed(ctx, job.Description)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.corpus.UpdateJobEmbedding(ctx, id, vector.Values, vector.Model); err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"id":         id,
		"model":      vector.Model,
		"dimensions": len(vector.Values),
	})
}

// handleCreateBlog stores a blog post with its embedding and a generated
// one-paragraph summary.
func (s *Server) handleCreateBlog(w http.ResponseWriter, r *http.Request) {
	var req createBlogRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := s.upstreamContext(r)
	defer cancel()

	vector, err := s.matcher.Embed(ctx, req.Content)
	if err != nil {
		s.writeError(w, err)
		return
	}

	summary, err := s.matcher.Summarize(ctx, req.Content)
	if err != nil {
		s.writeError(w, err)
		return
	}

	blog := &store.BlogPost{
		Title:     req.Title,
		Content:   req.Content,
		Summary:   summary,
		Embedding: vector.Values,
		Model:     vector.Model,
	}
	id, err := s.corpus.SaveBlog(ctx, blog)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{"id": id, "summary": summary})
}

func (s *Server) handleListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := s.corpus.ListBlogs(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"blogs": blogs})
}

func (s *Server) handleGetBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	blog, err := s.corpus.GetBlog(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if blog == nil {
		s.writeError(w, &ErrNotFound{Resource: "blog post", ID: id.String()})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"blog": blog})
}

// handleResummarizeBlog regenerates the stored summary from the blog's
// content.
func (s *Server) handleResummarizeBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := s.upstreamContext(r)
	defer cancel()

	blog, err := s.corpus.GetBlog(ctx, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if blog == nil {
		s.writeError(w, &ErrNotFound{Resource: "blog post", ID: id.String()})
		return
	}

	summary, err := s.matcher.Summarize(ctx, blog.Content)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.corpus.UpdateBlogSummary(ctx, id, summary); err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"id": id, "summary": summary})
}

// handleComputeRecommendations matches a resume against the job corpus
// and persists the ranked result as the user's current recommendation
// set, replacing any previous one.
func (s *Server) handleComputeRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	var req recommendRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	n := req.N
	if n == 0 {
		n = 10
	}

	ctx, cancel := s.upstreamContext(r)
	defer cancel()

	jobs, err := s.corpus.ListJobs(ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}

	results, err := s.matcher.MatchTopN(ctx, req.ResumeText, store.JobCandidates(jobs), n)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.corpus.ReplaceRecommendations(ctx, userID, results); err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"userId":  userID,
		"matches": matchPayload(results),
	})
}

func (s *Server) handleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	recs, err := s.corpus.GetRecommendations(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if recs == nil {
		recs = []store.RecommendedJob{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"userId":          userID,
		"recommendations": recs,
	})
}
