// Package google wraps the Google Calendar API for meeting
// provisioning during expert assignment.
package google

import (
	"context"
	"fmt"

	"wellspring/internal/config"
	"wellspring/internal/domain"
	"wellspring/internal/schedule"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

type CalendarService struct {
	service    *calendar.Service
	calendarID string
}

// NewCalendarService builds a calendar client from an OAuth2 refresh
// token. The token's account owns the target calendar.
func NewCalendarService(ctx context.Context, cfg config.GoogleConfig) (*CalendarService, error) {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       []string{calendar.CalendarEventsScope},
	}

	client := oauthConfig.Client(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %w", err)
	}

	return &CalendarService{service: srv, calendarID: cfg.CalendarID}, nil
}

// CreateEvent inserts a one-hour event with an auto-generated
// video-conference link and returns the join URL and event id.
func (s *CalendarService) CreateEvent(ctx context.Context, meeting domain.Meeting) (string, string, error) {
	event := &calendar.Event{
		Summary:     meeting.Summary,
		Description: meeting.Description,
		Start: &calendar.EventDateTime{
			DateTime: meeting.Start.UTC().Format("2006-01-02T15:04:05Z07:00"),
			TimeZone: "UTC",
		},
		End: &calendar.EventDateTime{
			DateTime: meeting.Start.Add(schedule.MeetingDuration).UTC().Format("2006-01-02T15:04:05Z07:00"),
			TimeZone: "UTC",
		},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId:             uuid.NewString(),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}
	for _, email := range meeting.Attendees {
		if email == "" {
			continue
		}
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}

	created, err := s.service.Events.Insert(s.calendarID, event).
		ConferenceDataVersion(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to insert calendar event: %w", err)
	}

	return created.HangoutLink, created.Id, nil
}
