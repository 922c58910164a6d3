package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveBlog inserts a blog post and returns its ID
func (s *Store) SaveBlog(ctx context.Context, blog *BlogPost) (uuid.UUID, error) {
	embeddingJSON, err := marshalEmbedding(blog.Embedding)
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	err = s.pool.QueryRow(ctx,
		`INSERT INTO blog_posts (title, content, summary, embedding, embedding_model)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		blog.Title, blog.Content, nullable(blog.Summary), embeddingJSON, nullable(blog.Model),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save blog post: %w", err)
	}
	return id, nil
}

// UpdateBlogSummary stores the generated summary for a blog post
func (s *Store) UpdateBlogSummary(ctx context.Context, blogID uuid.UUID, summary string) error {
	result, err := s.pool.Exec(ctx,
		`UPDATE blog_posts SET summary = $1, updated_at = NOW() WHERE id = $2`,
		summary, blogID,
	)
	if err != nil {
		return fmt.Errorf("failed to update blog summary: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("blog post %s: %w", blogID, ErrNotFound)
	}
	return nil
}

// GetBlog retrieves a blog post by ID
func (s *Store) GetBlog(ctx context.Context, blogID uuid.UUID) (*BlogPost, error) {
	var blog BlogPost
	var embeddingJSON []byte
	var summary, model *string

	err := s.pool.QueryRow(ctx,
		`SELECT id, title, content, summary, embedding, embedding_model, created_at
		 FROM blog_posts WHERE id = $1`,
		blogID,
	).Scan(&blog.ID, &blog.Title, &blog.Content, &summary, &embeddingJSON, &model, &blog.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}

	if err := unmarshalEmbedding(embeddingJSON, &blog.Embedding); err != nil {
		return nil, err
	}
	if summary != nil {
		blog.Summary = *summary
	}
	if model != nil {
		blog.Model = *model
	}
	return &blog, nil
}

// ListBlogs retrieves all blog posts, newest first
func (s *Store) ListBlogs(ctx context.Context) ([]BlogPost, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, content, summary, embedding, embedding_model, created_at
		 FROM blog_posts ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	defer rows.Close()

	var blogs []BlogPost
	for rows.Next() {
		var blog BlogPost
		var embeddingJSON []byte
		var summary, model *string
		if err := rows.Scan(&blog.ID, &blog.Title, &blog.Content, &summary, &embeddingJSON, &model, &blog.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blog post: %w", err)
		}
		if err := unmarshalEmbedding(embeddingJSON, &blog.Embedding); err != nil {
			return nil, err
		}
		if summary != nil {
			blog.Summary = *summary
		}
		if model != nil {
			blog.Model = *model
		}
		blogs = append(blogs, blog)
	}
	return blogs, nil
}
