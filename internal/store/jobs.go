package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveJob inserts a job posting and returns its ID. The embedding is
// stored as JSONB alongside the model that produced it so vectors from
// different models are never compared.
func (s *Store) SaveJob(ctx context.Context, job *JobPosting) (uuid.UUID, error) {
	embeddingJSON, err := marshalEmbedding(job.Embedding)
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	err = s.pool.QueryRow(ctx,
		`INSERT INTO job_postings (title, company, location, description, embedding, embedding_model)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		job.Title, job.Company, job.Location, job.Description, embeddingJSON, nullable(job.Model),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save job posting: %w", err)
	}
	return id, nil
}

// UpdateJobEmbedding replaces a posting's embedding vector
func (s *Store) UpdateJobEmbedding(ctx context.Context, jobID uuid.UUID, embedding []float64, model string) error {
	embeddingJSON, err := marshalEmbedding(embedding)
	if err != nil {
		return err
	}

	result, err := s.pool.Exec(ctx,
		`UPDATE job_postings SET embedding = $1, embedding_model = $2, updated_at = NOW() WHERE id = $3`,
		embeddingJSON, nullable(model), jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job embedding: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job posting %s: %w", jobID, ErrNotFound)
	}
	return nil
}

// GetJob retrieves a job posting by ID
func (s *Store) GetJob(ctx context.Context, jobID uuid.UUID) (*JobPosting, error) {
	var job JobPosting
	var embeddingJSON []byte
	var model *string

	err := s.pool.QueryRow(ctx,
		`SELECT id, title, company, COALESCE(location, ''), description, embedding, embedding_model, created_at
		 FROM job_postings WHERE id = $1`,
		jobID,
	).Scan(&job.ID, &job.Title, &job.Company, &job.Location, &job.Description, &embeddingJSON, &model, &job.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}

	if err := unmarshalEmbedding(embeddingJSON, &job.Embedding); err != nil {
		return nil, err
	}
	if model != nil {
		job.Model = *model
	}
	return &job, nil
}

// ListJobs retrieves all job postings, newest first
func (s *Store) ListJobs(ctx context.Context) ([]JobPosting, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, company, COALESCE(location, ''), description, embedding, embedding_model, created_at
		 FROM job_postings ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	var jobs []JobPosting
	for rows.Next() {
		var job JobPosting
		var embeddingJSON []byte
		var model *string
		if err := rows.Scan(&job.ID, &job.Title, &job.Company, &job.Location, &job.Description, &embeddingJSON, &model, &job.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		if err := unmarshalEmbedding(embeddingJSON, &job.Embedding); err != nil {
			return nil, err
		}
		if model != nil {
			job.Model = *model
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// DeleteJob deletes a job posting and any recommendations referencing it
func (s *Store) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete job posting: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job posting %s: %w", jobID, ErrNotFound)
	}
	return nil
}

func marshalEmbedding(embedding []float64) ([]byte, error) {
	if embedding == nil {
		return nil, nil
	}
	embeddingJSON, err := json.Marshal(embedding)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedding: %w", err)
	}
	return embeddingJSON, nil
}

func unmarshalEmbedding(embeddingJSON []byte, out *[]float64) error {
	if len(embeddingJSON) == 0 {
		return nil
	}
	if err := json.Unmarshal(embeddingJSON, out); err != nil {
		return fmt.Errorf("failed to unmarshal embedding: %w", err)
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
