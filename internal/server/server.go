package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/resume-match/internal/server/ratelimit"
	"github.com/jonathan/resume-match/internal/store"
	"github.com/jonathan/resume-match/internal/types"
)

// Matcher is the slice of the matching pipeline the handlers use.
type Matcher interface {
	Extract(doc types.Document) (*types.ExtractedText, error)
	Parse(ctx context.Context, resumeText string) (*types.Profile, error)
	Embed(ctx context.Context, text string) (types.Vector, error)
	Search(ctx context.Context, queryText string, candidates []types.Candidate) ([]types.MatchResult, error)
	MatchTopN(ctx context.Context, resumeText string, candidates []types.Candidate, n int) ([]types.MatchResult, error)
	Summarize(ctx context.Context, content string) (string, error)
}

// Corpus is the slice of the store the handlers use.
type Corpus interface {
	SaveJob(ctx context.Context, job *store.JobPosting) (uuid.UUID, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (*store.JobPosting, error)
	ListJobs(ctx context.Context) ([]store.JobPosting, error)
	UpdateJobEmbedding(ctx context.Context, jobID uuid.UUID, embedding []float64, model string) error
	DeleteJob(ctx context.Context, jobID uuid.UUID) error
	SaveBlog(ctx context.Context, blog *store.BlogPost) (uuid.UUID, error)
	GetBlog(ctx context.Context, blogID uuid.UUID) (*store.BlogPost, error)
	ListBlogs(ctx context.Context) ([]store.BlogPost, error)
	UpdateBlogSummary(ctx context.Context, blogID uuid.UUID, summary string) error
	ReplaceRecommendations(ctx context.Context, userID string, results []types.MatchResult) error
	GetRecommendations(ctx context.Context, userID string) ([]store.RecommendedJob, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	matcher         Matcher
	corpus          Corpus
	validate        *validator.Validate
	rateLimiter     *ratelimit.Limiter
	upstreamTimeout time.Duration
}

// Config holds server configuration
type Config struct {
	Port            string
	UpstreamTimeout time.Duration
}

// New creates a new server instance. The matcher and corpus are wired by
// the caller; the server owns only HTTP concerns.
func New(cfg Config, matcher Matcher, corpus Corpus) *Server {
	s := &Server{
		matcher:         matcher,
		corpus:          corpus,
		validate:        validator.New(),
		rateLimiter:     ratelimit.NewLimiter(ratelimit.LoadConfig()),
		upstreamTimeout: cfg.UpstreamTimeout,
	}
	if s.upstreamTimeout <= 0 {
		s.upstreamTimeout = 90 * time.Second
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.Routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Long timeout for AI-backed endpoints
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Routes builds the API router
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Core pipeline endpoints
	mux.HandleFunc("POST /api/extract", s.handleExtract)
	mux.HandleFunc("POST /api/parse", s.handleParse)
	mux.HandleFunc("POST /api/embed", s.handleEmbed)
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("POST /api/summarize", s.handleSummarize)

	// Corpus endpoints
	mux.HandleFunc("POST /api/jobs", s.handleCreateJob)
	mux.HandleFunc("GET /api/jobs", s.handleListJobs)
	mux.HandleFunc("GET /api/jobs/{id}", s.handleGetJob)
	mux.HandleFunc("DELETE /api/jobs/{id}", s.handleDeleteJob)
	mux.HandleFunc("POST /api/jobs/{id}/embedding", s.handleReembedJob)
	mux.HandleFunc("POST /api/blogs", s.handleCreateBlog)
	mux.HandleFunc("GET /api/blogs", s.handleListBlogs)
	mux.HandleFunc("GET /api/blogs/{id}", s.handleGetBlog)
	mux.HandleFunc("POST /api/blogs/{id}/summary", s.handleResummarizeBlog)

	// Recommendation endpoints
	mux.HandleFunc("POST /api/users/{id}/recommendations", s.handleComputeRecommendations)
	mux.HandleFunc("GET /api/users/{id}/recommendations", s.handleGetRecommendations)

	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	log.Println("Server stopped")
	return nil
}

// upstreamContext derives a request context bounded by the upstream
// timeout. Handlers that reach AI services wrap their work in it so a
// stalled provider cannot hold the connection past the deadline.
func (s *Server) upstreamContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.upstreamTimeout)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For would only be
// trustworthy behind a known proxy.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
