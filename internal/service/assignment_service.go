package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wellspring/internal/database"
	"wellspring/internal/domain"
	"wellspring/internal/events"
	"wellspring/internal/metrics"
	"wellspring/internal/models"

	"github.com/rs/zerolog"
)

// AssignmentService runs the expert-assignment workflow: load the
// booking and expert, best-effort provision a calendar event with a
// video link, best-effort notify both parties by email, then persist
// the confirmed booking. Calendar and email failures never abort the
// workflow; a confirmed-but-unnotified booking is recoverable by
// staff follow-up, a lost confirmation is not.
type AssignmentService struct {
	repo     domain.Repository
	calendar domain.CalendarClient // nil when credentials absent
	mailer   domain.EmailSender    // nil when credentials absent
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

// AssignmentResult reports what the workflow managed to provision
// alongside the confirmed booking.
type AssignmentResult struct {
	MeetingLink string `json:"meeting_link,omitempty"`
	EventID     string `json:"event_id,omitempty"`
	CalendarOK  bool   `json:"calendar_ok"`
	EmailOK     bool   `json:"email_ok"`
}

func NewAssignmentService(repo domain.Repository, calendar domain.CalendarClient, mailer domain.EmailSender, eventBus domain.EventPublisher, logger *zerolog.Logger) *AssignmentService {
	return &AssignmentService{
		repo:     repo,
		calendar: calendar,
		mailer:   mailer,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Assign attaches an expert and the agreed meeting instant to a
// booking. Reassignment of an already-confirmed booking is not
// guarded: last write wins.
func (s *AssignmentService) Assign(ctx context.Context, bookingID, expertID string, meetingTime time.Time) (AssignmentResult, error) {
	var result AssignmentResult

	if bookingID == "" || expertID == "" || meetingTime.IsZero() {
		return result, ErrValidation
	}

	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return result, fmt.Errorf("booking not found: %w", err)
		}
		return result, fmt.Errorf("failed to load booking: %w", err)
	}
	expert, err := s.repo.GetExpert(ctx, expertID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return result, fmt.Errorf("expert not found: %w", err)
		}
		return result, fmt.Errorf("failed to load expert: %w", err)
	}

	customerName := "Guest"
	customerEmail := ""
	if booking.Profile != nil {
		if booking.Profile.FullName != "" {
			customerName = booking.Profile.FullName
		}
		customerEmail = booking.Profile.Email
	}

	if s.calendar != nil {
		meeting := domain.Meeting{
			Summary:     fmt.Sprintf("Wellness Session: %s with %s", booking.ServiceID, expert.Name),
			Description: fmt.Sprintf("Customer: %s\nConcern: %s", customerName, booking.CustomerNotes),
			Start:       meetingTime,
			Attendees:   []string{expert.Email, customerEmail},
		}

		link, eventID, err := s.calendar.CreateEvent(ctx, meeting)
		if err != nil {
			s.logger.Warn().Err(err).Str("booking_id", bookingID).Msg("calendar event creation failed, continuing without link")
			metrics.IncNotification("calendar", "error")
		} else {
			result.MeetingLink = link
			result.EventID = eventID
			result.CalendarOK = true
			metrics.IncNotification("calendar", "ok")
		}
	}

	if s.mailer != nil {
		var recipients []string
		for _, addr := range []string{expert.Email, customerEmail} {
			if addr != "" {
				recipients = append(recipients, addr)
			}
		}

		if len(recipients) > 0 {
			subject := fmt.Sprintf("Meeting Confirmed: %s", booking.ServiceID)
			if err := s.mailer.Send(ctx, recipients, subject, confirmationBody(booking.ServiceID, expert.Name, meetingTime, result.MeetingLink)); err != nil {
				s.logger.Warn().Err(err).Str("booking_id", bookingID).Msg("confirmation email failed")
				metrics.IncNotification("email", "error")
			} else {
				result.EmailOK = true
				metrics.IncNotification("email", "ok")
			}
		}
	}

	// Persist regardless of notification outcome. This is the only
	// failure that surfaces once the lookups succeeded.
	if err := s.repo.AssignBooking(ctx, bookingID, expertID, result.MeetingLink, result.EventID, meetingTime); err != nil {
		metrics.IncAssignment("error")
		return result, fmt.Errorf("failed to persist assignment: %w", err)
	}
	metrics.IncAssignment("ok")

	s.publishEvent(events.EventBookingAssigned, events.BookingEventPayload{
		BookingID:   bookingID,
		ServiceID:   booking.ServiceID,
		ExpertID:    expertID,
		Status:      models.StatusConfirmed,
		BookingDate: meetingTime,
		MeetingLink: result.MeetingLink,
		ChangedBy:   "admin",
	})

	return result, nil
}

func confirmationBody(serviceID, expertName string, meetingTime time.Time, meetingLink string) string {
	link := meetingLink
	if link == "" {
		link = "Link will be shared shortly"
	}

	var b strings.Builder
	b.WriteString("Hello,\n\n")
	b.WriteString("Your session has been confirmed!\n\n")
	fmt.Fprintf(&b, "Service: %s\n", serviceID)
	fmt.Fprintf(&b, "Expert: %s\n", expertName)
	fmt.Fprintf(&b, "Time: %s\n\n", meetingTime.Format("Monday, 2 January 2006 at 3:04 PM"))
	fmt.Fprintf(&b, "Join Meeting: %s\n\n", link)
	b.WriteString("Best regards,\nWellspring")
	return b.String()
}

func (s *AssignmentService) publishEvent(eventType string, payload events.BookingEventPayload) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Str("booking_id", payload.BookingID).Msg("publish event error")
	}
}
