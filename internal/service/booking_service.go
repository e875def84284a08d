package service

import (
	"context"
	"fmt"
	"time"

	"wellspring/internal/domain"
	"wellspring/internal/events"
	"wellspring/internal/metrics"
	"wellspring/internal/models"
	"wellspring/internal/notes"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BookingService handles visitor submissions and the admin triage
// listing.
type BookingService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

// BookingRequest is a visitor's multi-step form submission. Contact
// details are folded into the notes column via the notes codec; the
// booking table has no guest-contact columns.
type BookingRequest struct {
	ServiceID string
	ProfileID string
	Date      time.Time
	Name      string
	Email     string
	Phone     string
	Age       string
	Concern   string
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, eventBus: eventBus, logger: logger}
}

// CreateBooking stores a pending booking with no expert assigned.
func (s *BookingService) CreateBooking(ctx context.Context, req BookingRequest) (*models.Booking, error) {
	if req.ServiceID == "" || req.Date.IsZero() || req.Name == "" || req.Email == "" {
		return nil, ErrValidation
	}

	svc, err := s.repo.GetService(ctx, req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("unknown service: %w", err)
	}
	if !svc.IsActive {
		return nil, ErrServiceInactive
	}

	booking := &models.Booking{
		ID:          uuid.NewString(),
		ServiceID:   req.ServiceID,
		ProfileID:   req.ProfileID,
		BookingDate: req.Date,
		Status:      models.StatusPending,
		CustomerNotes: notes.Encode(notes.Fields{
			ServiceTitle: svc.Title,
			Name:         req.Name,
			Email:        req.Email,
			Phone:        req.Phone,
			Age:          req.Age,
			Concern:      req.Concern,
		}),
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}
	metrics.IncBookingCreated()

	s.publishEvent(events.EventBookingCreated, events.BookingEventPayload{
		BookingID:   booking.ID,
		ServiceID:   booking.ServiceID,
		Status:      booking.Status,
		BookingDate: booking.BookingDate,
		ChangedBy:   "visitor",
	})

	return booking, nil
}

// ListBookings returns all bookings for the admin view, newest
// appointment first.
func (s *BookingService) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	return s.repo.ListBookings(ctx)
}

// GetBooking returns one booking with joined profile contact info.
func (s *BookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

func (s *BookingService) publishEvent(eventType string, payload events.BookingEventPayload) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Str("booking_id", payload.BookingID).Msg("publish event error")
	}
}
