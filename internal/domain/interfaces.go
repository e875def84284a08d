package domain

import (
	"context"
	"io"
	"time"

	"wellspring/internal/models"
)

// Repository is the relational-store surface the services consume.
type Repository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]*models.Booking, error)
	AssignBooking(ctx context.Context, id, expertID, meetingLink, eventID string, meetingTime time.Time) error
	UpdateBookingStatus(ctx context.Context, id, status string) error

	CreateExpert(ctx context.Context, expert *models.Expert) error
	GetExpert(ctx context.Context, id string) (*models.Expert, error)
	ListExperts(ctx context.Context) ([]*models.Expert, error)
	UpdateExpert(ctx context.Context, expert *models.Expert) error
	DeleteExpert(ctx context.Context, id string) error

	CreateService(ctx context.Context, service *models.Service) error
	GetService(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context, activeOnly bool) ([]*models.Service, error)
	UpdateService(ctx context.Context, service *models.Service) error
	DeleteService(ctx context.Context, id string) error
	CountServices(ctx context.Context) (int, error)
	SeedServices(ctx context.Context, services []*models.Service) error

	CreateProfile(ctx context.Context, profile *models.Profile) error
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
}

// Meeting describes the calendar event the assignment workflow
// provisions: a fixed-length session with a conference link request.
type Meeting struct {
	Summary     string
	Description string
	Start       time.Time
	Attendees   []string
}

// CalendarClient creates external calendar events. Implementations
// may fail independently of the rest of the system; callers treat
// failures as non-fatal.
type CalendarClient interface {
	CreateEvent(ctx context.Context, meeting Meeting) (link string, eventID string, err error)
}

// EmailSender delivers a plain-text message. Failures are the
// caller's problem to downgrade.
type EmailSender interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// ObjectStore abstracts bucketed file storage with publicly reachable
// URLs derived from object names.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, name string, r io.Reader) error
	List(ctx context.Context, bucket string) ([]models.GalleryImage, error)
	Remove(ctx context.Context, bucket, name string) error
	PublicURL(bucket, name string) string
}

// SessionStore keeps issued admin sessions keyed by token id, so a
// logout revokes the token before its expiry. Get returns nil, nil
// for a missing or expired session.
type SessionStore interface {
	Put(ctx context.Context, tokenID string, session *models.AdminSession, ttl time.Duration) error
	Get(ctx context.Context, tokenID string) (*models.AdminSession, error)
	Delete(ctx context.Context, tokenID string) error
}

// EventPublisher emits domain events for in-process consumers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
