package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-match/internal/types"
)

// ReplaceRecommendations atomically replaces a user's recommendation set
// with the given ranked results. The old set is discarded even when the
// new one is empty, so a rerun that matches nothing clears stale rows.
func (s *Store) ReplaceRecommendations(ctx context.Context, userID string, results []types.MatchResult) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM recommendations WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear recommendations: %w", err)
	}

	for _, r := range results {
		jobID, err := uuid.Parse(r.ID)
		if err != nil {
			return fmt.Errorf("invalid job id %q in match result: %w", r.ID, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO recommendations (user_id, job_id, rank, similarity)
			 VALUES ($1, $2, $3, $4)`,
			userID, jobID, r.Rank, r.Similarity,
		); err != nil {
			return fmt.Errorf("failed to save recommendation: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit recommendations: %w", err)
	}
	return nil
}

// GetRecommendations retrieves a user's current recommendation set with
// the referenced postings, in rank order
func (s *Store) GetRecommendations(ctx context.Context, userID string) ([]RecommendedJob, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT r.job_id, r.rank, r.similarity,
		        j.title, j.company, COALESCE(j.location, ''), j.description, j.created_at
		 FROM recommendations r
		 JOIN job_postings j ON j.id = r.job_id
		 WHERE r.user_id = $1
		 ORDER BY r.rank ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}
	defer rows.Close()

	var recs []RecommendedJob
	for rows.Next() {
		var rec RecommendedJob
		if err := rows.Scan(&rec.Job.ID, &rec.Rank, &rec.Similarity,
			&rec.Job.Title, &rec.Job.Company, &rec.Job.Location, &rec.Job.Description, &rec.Job.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// RecommendedJob joins a recommendation with its posting
type RecommendedJob struct {
	Job        JobPosting `json:"job"`
	Rank       int        `json:"rank"`
	Similarity float64    `json:"similarity"`
}
