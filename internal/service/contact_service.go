package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wizonweb/wizon-server/internal/mail"
	"github.com/wizonweb/wizon-server/internal/model"
	"github.com/wizonweb/wizon-server/internal/queue"
)

// ContactRepository is the persistence the contact store needs.
type ContactRepository interface {
	Create(ctx context.Context, c *model.Contact) error
	GetByID(ctx context.Context, id string) (*model.Contact, error)
	ListAll(ctx context.Context) ([]*model.Contact, error)
	MarkSeen(ctx context.Context, id string, at time.Time) error
	CountTotal(ctx context.Context) (int64, error)
	CountUnseen(ctx context.Context) (int64, error)
}

// Notifier delivers an HTML message to one recipient.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// EventPublisher receives a contact event after it is stored.
type EventPublisher interface {
	PublishContactReceived(ctx context.Context, ev queue.ContactReceivedEvent) error
}

// ContactInput is the public form payload.  Field names match the site's
// form, so the description arrives as "disc" and the ads answer as "ads".
type ContactInput struct {
	Firstname FormText `json:"firstname" form:"firstname"`
	Lastname  FormText `json:"lastname" form:"lastname"`
	Phone     FormText `json:"phone" form:"phone"`
	Email     FormText `json:"email" form:"email"`
	Brandname FormText `json:"brandname" form:"brandname"`
	Ads       FormText `json:"ads" form:"ads"`
	Budget    FormText `json:"budget" form:"budget"`
	Disc      FormText `json:"disc" form:"disc"`
}

// ContactService is the contact store plus the owner notification.
type ContactService struct {
	repo     ContactRepository
	notifier Notifier
	notifyTo string
	events   EventPublisher
	now      func() time.Time
}

// NewContactService wires the store.  events may be nil.
func NewContactService(repo ContactRepository, notifier Notifier, notifyTo string, events EventPublisher) *ContactService {
	return &ContactService{repo: repo, notifier: notifier, notifyTo: notifyTo, events: events, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (s *ContactService) WithClock(now func() time.Time) *ContactService {
	s.now = now
	return s
}

// Create validates and stores a submission, then notifies the owner.  When
// delivery fails the stored contact is returned together with an error
// wrapping ErrMailDelivery; the record is not rolled back.
func (s *ContactService) Create(ctx context.Context, in ContactInput) (*model.Contact, error) {
	c := &model.Contact{
		Firstname:     in.Firstname.trimmed(),
		Lastname:      in.Lastname.trimmed(),
		Phone:         in.Phone.trimmed(),
		Email:         strings.ToLower(in.Email.trimmed()),
		Brandname:     in.Brandname.trimmed(),
		MetaAds:       strings.ToLower(in.Ads.trimmed()),
		MonthlyBudget: in.Budget.trimmed(),
		Description:   in.Disc.trimmed(),
	}
	for _, v := range []string{c.Firstname, c.Lastname, c.Phone, c.Email, c.Brandname, c.MetaAds, c.MonthlyBudget, c.Description} {
		if v == "" {
			return nil, invalid("Please fill all the fields")
		}
	}
	if c.MetaAds != model.MetaAdsYes && c.MetaAds != model.MetaAdsNo {
		return nil, invalid("Ads must be either yes or no")
	}

	now := s.now().UTC().Truncate(time.Second)
	c.ID = uuid.NewString()
	c.Source = model.ContactSourceForm
	c.CreatedAt = now
	c.UpdatedAt = now

	body, err := mail.RenderContactMessage(c)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}

	if err := s.notifier.Send(ctx, s.notifyTo, mail.ContactSubject, body); err != nil {
		slog.Error("contact notification failed", "contact_id", c.ID, "error", err)
		return c, fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	s.publish(ctx, c)
	return c, nil
}

func (s *ContactService) publish(ctx context.Context, c *model.Contact) {
	if s.events == nil {
		return
	}
	ev := queue.ContactReceivedEvent{
		ContactID:  c.ID,
		Firstname:  c.Firstname,
		Lastname:   c.Lastname,
		Email:      c.Email,
		Phone:      c.Phone,
		Brandname:  c.Brandname,
		MetaAds:    c.MetaAds,
		Budget:     c.MonthlyBudget,
		Source:     c.Source,
		ReceivedAt: c.CreatedAt.Format(time.RFC3339),
	}
	if err := s.events.PublishContactReceived(ctx, ev); err != nil {
		slog.Warn("contact event not published", "contact_id", c.ID, "error", err)
	}
}

// ListAll returns every contact, newest first.
func (s *ContactService) ListAll(ctx context.Context) ([]*model.Contact, error) {
	return s.repo.ListAll(ctx)
}

// GetByID returns one contact.
func (s *ContactService) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, key)
}

// MarkSeen flags the contact as seen and returns it.  Marking an already
// seen contact succeeds.
func (s *ContactService) MarkSeen(ctx context.Context, id string) (*model.Contact, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.MarkSeen(ctx, key, s.now().UTC().Truncate(time.Second)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("mark contact seen: %w", err)
	}
	return s.repo.GetByID(ctx, key)
}

// CountTotal returns the number of stored contacts.
func (s *ContactService) CountTotal(ctx context.Context) (int64, error) {
	return s.repo.CountTotal(ctx)
}

// Stats returns total, seen and unseen counts.
func (s *ContactService) Stats(ctx context.Context) (model.ContactStats, error) {
	total, err := s.repo.CountTotal(ctx)
	if err != nil {
		return model.ContactStats{}, err
	}
	unseen, err := s.repo.CountUnseen(ctx)
	if err != nil {
		return model.ContactStats{}, err
	}
	return model.ContactStats{Total: total, Seen: total - unseen, Unseen: unseen}, nil
}
