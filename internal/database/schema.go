package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema creates the two collections the service owns.  The DDL sticks to
// the subset MySQL and SQLite both accept so tests can run it in memory.
// Column defaults are applied in Go; MySQL rejects defaults on TEXT columns.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS blogs (
		id             VARCHAR(36)  NOT NULL PRIMARY KEY,
		title          VARCHAR(512) NOT NULL,
		excerpt        TEXT         NOT NULL,
		content        MEDIUMTEXT   NOT NULL,
		tags           TEXT         NOT NULL,
		featured_image TEXT         NOT NULL,
		status         VARCHAR(16)  NOT NULL,
		created_at     DATETIME     NOT NULL,
		updated_at     DATETIME     NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id             VARCHAR(36)  NOT NULL PRIMARY KEY,
		firstname      VARCHAR(255) NOT NULL,
		lastname       VARCHAR(255) NOT NULL,
		phone          VARCHAR(64)  NOT NULL,
		email          VARCHAR(320) NOT NULL,
		brandname      VARCHAR(255) NOT NULL,
		meta_ads       VARCHAR(3)   NOT NULL,
		monthly_budget VARCHAR(255) NOT NULL,
		description    TEXT         NOT NULL,
		is_seen        BOOLEAN      NOT NULL,
		source         VARCHAR(64)  NOT NULL,
		created_at     DATETIME     NOT NULL,
		updated_at     DATETIME     NOT NULL
	)`,
}

// EnsureSchema creates missing tables.  It never alters existing ones.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
