// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for blog posts.  Tags are stored as a
// JSON array in a TEXT column so the same schema works on MySQL and SQLite.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wizonweb/wizon-server/internal/model"
)

// BlogRepo encapsulates all database queries related to blogs.  It
// depends on a sql.DB connection which should be configured elsewhere.
type BlogRepo struct {
	db *sql.DB
}

// NewBlogRepo constructs a BlogRepo with the provided DB handle.
func NewBlogRepo(db *sql.DB) *BlogRepo {
	return &BlogRepo{db: db}
}

const blogColumns = "id, title, excerpt, content, tags, featured_image, status, created_at, updated_at"

// Create inserts a fully populated blog.  The caller assigns the id and
// timestamps.
func (r *BlogRepo) Create(ctx context.Context, b *model.Blog) error {
	tags, err := encodeTags(b.Tags)
	if err != nil {
		return err
	}
	const q = "INSERT INTO blogs (" + blogColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
	_, err = r.db.ExecContext(ctx, q,
		b.ID, b.Title, b.Excerpt, b.Content, tags, b.FeaturedImage, string(b.Status), b.CreatedAt, b.UpdatedAt)
	return err
}

// GetByID fetches a blog regardless of status.  It returns ErrNotFound if no
// row is found.
func (r *BlogRepo) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	const q = "SELECT " + blogColumns + " FROM blogs WHERE id = ?"
	b, err := scanBlog(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// List returns blogs newest first.  An empty status returns every blog;
// otherwise only blogs with that status are included.
func (r *BlogRepo) List(ctx context.Context, status model.BlogStatus) ([]*model.Blog, error) {
	q := "SELECT " + blogColumns + " FROM blogs"
	var args []any
	if status != "" {
		q += " WHERE status = ?"
		args = append(args, string(status))
	}
	q += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the mutable columns of an existing blog.  It returns
// ErrNotFound when no row has the blog's id.
func (r *BlogRepo) Update(ctx context.Context, b *model.Blog) error {
	tags, err := encodeTags(b.Tags)
	if err != nil {
		return err
	}
	const q = `UPDATE blogs
	           SET title = ?, excerpt = ?, content = ?, tags = ?, featured_image = ?, status = ?, updated_at = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		b.Title, b.Excerpt, b.Content, tags, b.FeaturedImage, string(b.Status), b.UpdatedAt, b.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete permanently removes a blog.  It returns ErrNotFound if nothing
// was deleted.
func (r *BlogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM blogs WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlog(s rowScanner) (*model.Blog, error) {
	var (
		b      model.Blog
		tags   string
		status string
	)
	if err := s.Scan(&b.ID, &b.Title, &b.Excerpt, &b.Content, &tags, &b.FeaturedImage, &status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.Status = model.BlogStatus(status)
	decoded, err := decodeTags(tags)
	if err != nil {
		return nil, fmt.Errorf("blog %s: %w", b.ID, err)
	}
	b.Tags = decoded
	return &b, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	bs, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(bs), nil
}

func decodeTags(raw string) ([]string, error) {
	tags := []string{}
	if raw == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
