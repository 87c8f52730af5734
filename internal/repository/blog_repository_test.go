package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/wizonweb/wizon-server/internal/database"
	"github.com/wizonweb/wizon-server/internal/model"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// one connection, otherwise each pooled conn sees its own empty :memory: database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return db
}

var baseTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newBlog(id, title string, status model.BlogStatus, created time.Time) *model.Blog {
	return &model.Blog{
		ID:        id,
		Title:     title,
		Excerpt:   title + " excerpt",
		Content:   "<p>" + title + "</p>",
		Tags:      []string{"go", "marketing"},
		Status:    status,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestBlogCRUD(t *testing.T) {
	repo := NewBlogRepo(setupTestDB(t))
	ctx := context.Background()

	b := newBlog("b1", "First", model.BlogPublished, baseTime)
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, "b1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "First" || got.Status != model.BlogPublished {
		t.Errorf("got %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "go" || got.Tags[1] != "marketing" {
		t.Errorf("tags = %v", got.Tags)
	}
	if !got.CreatedAt.Equal(baseTime) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, baseTime)
	}

	got.Title = "First (edited)"
	got.Tags = nil
	got.Status = model.BlogDraft
	got.UpdatedAt = baseTime.Add(time.Hour)
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, err := repo.GetByID(ctx, "b1")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if again.Title != "First (edited)" || again.Status != model.BlogDraft {
		t.Errorf("after update = %+v", again)
	}
	if again.Tags == nil || len(again.Tags) != 0 {
		t.Errorf("tags = %#v, want empty non-nil slice", again.Tags)
	}

	if err := repo.Delete(ctx, "b1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "b1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete err = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, "b1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestBlogUpdateMissing(t *testing.T) {
	repo := NewBlogRepo(setupTestDB(t))
	b := newBlog("ghost", "Ghost", model.BlogPublished, baseTime)
	if err := repo.Update(context.Background(), b); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestBlogListOrderAndFilter(t *testing.T) {
	repo := NewBlogRepo(setupTestDB(t))
	ctx := context.Background()

	seed := []*model.Blog{
		newBlog("old", "Old", model.BlogPublished, baseTime),
		newBlog("draft", "Draft", model.BlogDraft, baseTime.Add(time.Minute)),
		newBlog("new", "New", model.BlogPublished, baseTime.Add(2*time.Minute)),
	}
	for _, b := range seed {
		if err := repo.Create(ctx, b); err != nil {
			t.Fatalf("create %s: %v", b.ID, err)
		}
	}

	all, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if ids := blogIDs(all); len(ids) != 3 || ids[0] != "new" || ids[1] != "draft" || ids[2] != "old" {
		t.Errorf("all ids = %v, want [new draft old]", ids)
	}

	published, err := repo.List(ctx, model.BlogPublished)
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if ids := blogIDs(published); len(ids) != 2 || ids[0] != "new" || ids[1] != "old" {
		t.Errorf("published ids = %v, want [new old]", ids)
	}
}

func TestBlogListEmpty(t *testing.T) {
	repo := NewBlogRepo(setupTestDB(t))
	list, err := repo.List(context.Background(), model.BlogPublished)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("list = %#v, want empty non-nil slice", list)
	}
}

func blogIDs(bs []*model.Blog) []string {
	ids := make([]string, 0, len(bs))
	for _, b := range bs {
		ids = append(ids, b.ID)
	}
	return ids
}
