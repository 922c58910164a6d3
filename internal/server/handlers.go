package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-match/internal/parsing"
	"github.com/jonathan/resume-match/internal/store"
	"github.com/jonathan/resume-match/internal/types"
)

type extractRequest struct {
	FileData string `json:"fileData" validate:"required"`
	FileType string `json:"fileType,omitempty"`
	FileName string `json:"fileName,omitempty"`
}

type parseRequest struct {
	ResumeText string `json:"resumeText" validate:"required"`
}

type embedRequest struct {
	Text string `json:"text" validate:"required"`
}

type searchRequest struct {
	Query  string `json:"query" validate:"required"`
	Corpus string `json:"corpus,omitempty" validate:"omitempty,oneof=jobs blogs"`
}

type summarizeRequest struct {
	Content string `json:"content" validate:"required"`
}

// decodeAndValidate decodes the JSON body into dst and applies struct tag
// validation. A false return means the response has been written.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			s.errorResponse(w, http.StatusInternalServerError, "validation setup error")
			return false
		}
		for _, fieldErr := range err.(validator.ValidationErrors) {
			s.errorResponse(w, http.StatusBadRequest,
				(&ErrValidation{Field: fieldErr.Field(), Message: "failed " + fieldErr.Tag() + " check"}).Error())
			return false
		}
		s.errorResponse(w, http.StatusBadRequest, "invalid request")
		return false
	}
	return true
}

// writeError maps a pipeline error to its HTTP status. Schema violations
// additionally surface the raw model output so a failed parse can be
// inspected by the caller.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)

	var schemaErr *parsing.SchemaViolationError
	if errors.As(err, &schemaErr) {
		s.jsonResponse(w, status, map[string]string{
			"error":     schemaErr.Error(),
			"rawOutput": schemaErr.RawOutput,
		})
		return
	}

	if status >= http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
	}
	s.errorResponse(w, status, err.Error())
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.FileData)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "fileData is not valid base64")
		return
	}

	doc := types.Document{Data: data, Format: types.Format(req.FileType), Filename: req.FileName}
	extracted, err := s.matcher.Extract(doc)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":        true,
		"extractedText":  extracted.Text,
		"fileType":       extracted.Format,
		"characterCount": extracted.CharacterCount,
	})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := s.upstreamContext(r)
	defer cancel()

	profile, err := s.matcher.Parse(ctx, req.ResumeText)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":    true,
		"parsedData": profile,
	})
}

func (s *Server) handleEmbed(w http.ResponseWriter, r *http.Request) {
	var req embedRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := s.upstreamContext(r)
	defer cancel()

	vector, err := s.matcher.Embed(ctx, req.Text)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"embedding": vector.Values,
		"model":     vector.Model,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := s.upstreamContext(r)
	defer cancel()

	var candidates []types.Candidate
	switch req.Corpus {
	case "jobs":
		jobs, err := s.corpus.ListJobs(ctx)
		if err != nil {
			s.writeError(w, err)
			return
		}
		candidates = store.JobCandidates(jobs)
	default: // blogs
		blogs, err := s.corpus.ListBlogs(ctx)
		if err != nil {
			s.writeError(w, err)
			return
		}
		candidates = store.BlogCandidates(blogs)
	}

	results, err := s.matcher.Search(ctx, req.Query, candidates)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"results": matchPayload(results),
	})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	ctx, cancel := s.upstreamContext(r)
	defer cancel()

	summary, err := s.matcher.Summarize(ctx, req.Content)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"summary": summary})
}

// matchPayload shapes ranked results for the wire: the matched item plus
// its score and rank.
func matchPayload(results []types.MatchResult) []map[string]any {
	payload := make([]map[string]any, len(results))
	for i, r := range results {
		payload[i] = map[string]any{
			"id":         r.ID,
			"item":       r.Candidate.Item,
			"similarity": r.Similarity,
			"rank":       r.Rank,
		}
	}
	return payload
}
