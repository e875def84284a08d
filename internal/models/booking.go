package models

import "time"

type Booking struct {
	ID            string    `json:"id"`
	ServiceID     string    `json:"service_id"`
	ExpertID      string    `json:"expert_id,omitempty"`
	ProfileID     string    `json:"profile_id,omitempty"`
	BookingDate   time.Time `json:"booking_date"`
	Status        string    `json:"status"` // pending, confirmed, completed, cancelled
	CustomerNotes string    `json:"customer_notes,omitempty"`
	MeetingLink   string    `json:"meeting_link,omitempty"`
	GoogleEventID string    `json:"google_event_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Profile is the linked account's contact info, joined on read.
	// Nil for guest bookings.
	Profile *Profile `json:"profile,omitempty"`
}
