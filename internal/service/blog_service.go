package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wizonweb/wizon-server/internal/model"
)

// BlogRepository is the persistence the blog store needs.
type BlogRepository interface {
	Create(ctx context.Context, b *model.Blog) error
	GetByID(ctx context.Context, id string) (*model.Blog, error)
	List(ctx context.Context, status model.BlogStatus) ([]*model.Blog, error)
	Update(ctx context.Context, b *model.Blog) error
	Delete(ctx context.Context, id string) error
}

// CacheInvalidator drops cached public blog responses after a write.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// BlogInput is the create payload.  Status defaults to Published.
type BlogInput struct {
	Title         string           `json:"title" form:"title"`
	Excerpt       string           `json:"excerpt" form:"excerpt"`
	Content       string           `json:"content" form:"content"`
	Tags          TagList          `json:"tags" form:"tags"`
	FeaturedImage string           `json:"featuredImage" form:"featuredImage"`
	Status        model.BlogStatus `json:"status" form:"status"`
}

// BlogPatch is a partial update; nil fields are left unchanged.
type BlogPatch struct {
	Title         *string           `json:"title" form:"title"`
	Excerpt       *string           `json:"excerpt" form:"excerpt"`
	Content       *string           `json:"content" form:"content"`
	Tags          *TagList          `json:"tags" form:"tags"`
	FeaturedImage *string           `json:"featuredImage" form:"featuredImage"`
	Status        *model.BlogStatus `json:"status" form:"status"`
}

const msgBlogRequired = "Title, excerpt and content are required fields."

// BlogService is the blog store.  Anonymous readers only ever see
// Published blogs; the admin surface sees everything.
type BlogService struct {
	repo  BlogRepository
	cache CacheInvalidator
	now   func() time.Time
}

// NewBlogService wires the store.  cache may be nil.
func NewBlogService(repo BlogRepository, cache CacheInvalidator) *BlogService {
	return &BlogService{repo: repo, cache: cache, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (s *BlogService) WithClock(now func() time.Time) *BlogService {
	s.now = now
	return s
}

func (s *BlogService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Second)
}

// Create validates in and stores a new blog with a fresh id.
func (s *BlogService) Create(ctx context.Context, in BlogInput) (*model.Blog, error) {
	title := strings.TrimSpace(in.Title)
	excerpt := strings.TrimSpace(in.Excerpt)
	if title == "" || excerpt == "" || strings.TrimSpace(in.Content) == "" {
		return nil, invalid(msgBlogRequired)
	}
	status := in.Status
	if status == "" {
		status = model.BlogPublished
	}
	if !status.Valid() {
		return nil, invalid("Status must be Published or Draft.")
	}

	now := s.timestamp()
	b := &model.Blog{
		ID:            uuid.NewString(),
		Title:         title,
		Excerpt:       excerpt,
		Content:       in.Content,
		Tags:          NormalizeTags(in.Tags),
		FeaturedImage: strings.TrimSpace(in.FeaturedImage),
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	s.invalidate(ctx)
	return b, nil
}

// ListPublic returns Published blogs, newest first.
func (s *BlogService) ListPublic(ctx context.Context) ([]*model.Blog, error) {
	return s.repo.List(ctx, model.BlogPublished)
}

// ListAll returns every blog regardless of status, newest first.
func (s *BlogService) ListAll(ctx context.Context) ([]*model.Blog, error) {
	return s.repo.List(ctx, "")
}

// GetPublicByID returns the blog only if it is Published.  Drafts are
// reported as not found so their existence is not revealed.
func (s *BlogService) GetPublicByID(ctx context.Context, id string) (*model.Blog, error) {
	b, err := s.GetAnyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsPublic() {
		return nil, ErrNotFound
	}
	return b, nil
}

// GetAnyByID returns the blog regardless of status.
func (s *BlogService) GetAnyByID(ctx context.Context, id string) (*model.Blog, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, key)
}

// Update applies the supplied fields to an existing blog.  The id and
// creation time never change; updatedAt is refreshed.
func (s *BlogService) Update(ctx context.Context, id string, p BlogPatch) (*model.Blog, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	b, err := s.repo.GetByID(ctx, key)
	if err != nil {
		return nil, err
	}

	if p.Title != nil {
		b.Title = strings.TrimSpace(*p.Title)
	}
	if p.Excerpt != nil {
		b.Excerpt = strings.TrimSpace(*p.Excerpt)
	}
	if p.Content != nil {
		b.Content = *p.Content
	}
	if b.Title == "" || b.Excerpt == "" || strings.TrimSpace(b.Content) == "" {
		return nil, invalid(msgBlogRequired)
	}
	if p.Tags != nil {
		b.Tags = NormalizeTags(*p.Tags)
	}
	if p.FeaturedImage != nil {
		b.FeaturedImage = strings.TrimSpace(*p.FeaturedImage)
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return nil, invalid("Status must be Published or Draft.")
		}
		b.Status = *p.Status
	}
	b.UpdatedAt = s.timestamp()

	if err := s.repo.Update(ctx, b); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update blog: %w", err)
	}
	s.invalidate(ctx)
	return b, nil
}

// Delete removes the blog permanently.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	key, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, key); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete blog: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *BlogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		slog.Warn("blog cache invalidation failed", "error", err)
	}
}

// parseID canonicalises a UUID so lookups are case-insensitive.
func parseID(id string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", ErrInvalidID
	}
	return u.String(), nil
}
