package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/wizonweb/wizon-server/internal/model"
)

// ContactRepo persists contact form submissions.
type ContactRepo struct{ db *sql.DB }

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

const contactColumns = `id, firstname, lastname, phone, email, brandname, meta_ads, monthly_budget,
	description, is_seen, source, created_at, updated_at`

// Create inserts a contact row.
func (r *ContactRepo) Create(ctx context.Context, c *model.Contact) error {
	const q = "INSERT INTO contacts (" + contactColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, q,
		c.ID, c.Firstname, c.Lastname, c.Phone, c.Email, c.Brandname, c.MetaAds, c.MonthlyBudget,
		c.Description, c.IsSeen, c.Source, c.CreatedAt, c.UpdatedAt)
	return err
}

// GetByID fetches one contact or ErrNotFound.
func (r *ContactRepo) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	const q = "SELECT " + contactColumns + " FROM contacts WHERE id = ?"
	c, err := scanContact(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListAll returns every contact, newest first.
func (r *ContactRepo) ListAll(ctx context.Context) ([]*model.Contact, error) {
	const q = "SELECT " + contactColumns + " FROM contacts ORDER BY created_at DESC, id DESC"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkSeen sets is_seen.  Re-marking a seen contact is not an error; the
// DSN reports matched rather than changed rows.  ErrNotFound is returned
// when the id does not exist.
func (r *ContactRepo) MarkSeen(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE contacts SET is_seen = ?, updated_at = ? WHERE id = ?", true, at, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountTotal returns the number of stored contacts.
func (r *ContactRepo) CountTotal(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contacts").Scan(&n)
	return n, err
}

// CountUnseen returns the number of contacts not yet marked seen.
func (r *ContactRepo) CountUnseen(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contacts WHERE is_seen = ?", false).Scan(&n)
	return n, err
}

func scanContact(s rowScanner) (*model.Contact, error) {
	var c model.Contact
	err := s.Scan(&c.ID, &c.Firstname, &c.Lastname, &c.Phone, &c.Email, &c.Brandname, &c.MetaAds,
		&c.MonthlyBudget, &c.Description, &c.IsSeen, &c.Source, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
