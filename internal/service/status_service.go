package service

import (
	"context"
	"fmt"

	"wellspring/internal/domain"
	"wellspring/internal/events"
	"wellspring/internal/models"

	"github.com/rs/zerolog"
)

// StatusService moves bookings between lifecycle statuses. Any status
// may transition to any other, including back to pending after an
// assignment; the old expert, meeting link and event id stay on the
// row in that case.
type StatusService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewStatusService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *StatusService {
	return &StatusService{repo: repo, eventBus: eventBus, logger: logger}
}

// SetStatus updates a booking's status after validating it against the
// known set.
func (s *StatusService) SetStatus(ctx context.Context, bookingID, status string) error {
	if bookingID == "" {
		return fmt.Errorf("%w: booking id", ErrValidation)
	}
	if !models.ValidStatus(status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	if err := s.repo.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		return err
	}

	s.logger.Info().Str("booking_id", bookingID).Str("status", status).Msg("booking status updated")

	if s.eventBus != nil {
		if err := s.eventBus.PublishJSON(events.EventBookingStatusChanged, events.BookingEventPayload{
			BookingID: bookingID,
			Status:    status,
			ChangedBy: "admin",
		}); err != nil {
			s.logger.Error().Err(err).Str("booking_id", bookingID).Msg("publish event error")
		}
	}
	return nil
}
