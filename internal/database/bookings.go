package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wellspring/internal/models"
)

const bookingColumns = `b.id, b.service_id, b.expert_id, b.profile_id, b.booking_date,
        b.status, b.customer_notes, b.meeting_link, b.google_event_id, b.created_at, b.updated_at,
        p.id, p.full_name, p.email, p.phone`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	var b models.Booking
	var expertID, profileID, notes, link, eventID sql.NullString
	var pID, pName, pEmail, pPhone sql.NullString

	err := row.Scan(
		&b.ID,
		&b.ServiceID,
		&expertID,
		&profileID,
		&b.BookingDate,
		&b.Status,
		&notes,
		&link,
		&eventID,
		&b.CreatedAt,
		&b.UpdatedAt,
		&pID,
		&pName,
		&pEmail,
		&pPhone,
	)
	if err != nil {
		return nil, err
	}

	b.ExpertID = expertID.String
	b.ProfileID = profileID.String
	b.CustomerNotes = notes.String
	b.MeetingLink = link.String
	b.GoogleEventID = eventID.String
	if pID.Valid {
		b.Profile = &models.Profile{
			ID:       pID.String,
			FullName: pName.String,
			Email:    pEmail.String,
			Phone:    pPhone.String,
		}
	}
	return &b, nil
}

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (
                id, service_id, expert_id, profile_id, booking_date,
                status, customer_notes, meeting_link, google_event_id, created_at, updated_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now()
	_, err := db.ExecContext(ctx, query,
		booking.ID,
		booking.ServiceID,
		nullable(booking.ExpertID),
		nullable(booking.ProfileID),
		booking.BookingDate,
		booking.Status,
		nullable(booking.CustomerNotes),
		nullable(booking.MeetingLink),
		nullable(booking.GoogleEventID),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

// GetBooking returns a booking with its linked profile contact info.
func (db *DB) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
        FROM bookings b
        LEFT JOIN profiles p ON p.id = b.profile_id
        WHERE b.id = ?`

	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// ListBookings returns all bookings with profile contact info,
// newest appointment first.
func (db *DB) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
        FROM bookings b
        LEFT JOIN profiles p ON p.id = b.profile_id
        ORDER BY b.booking_date DESC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

// AssignBooking applies the assignment workflow's outcome in one
// update: expert, confirmed status, optional meeting link and event
// id, and the agreed meeting instant replacing the requested date.
func (db *DB) AssignBooking(ctx context.Context, id, expertID, meetingLink, eventID string, meetingTime time.Time) error {
	query := `UPDATE bookings
        SET expert_id = ?, status = ?, meeting_link = ?, google_event_id = ?, booking_date = ?, updated_at = ?
        WHERE id = ?`

	result, err := db.ExecContext(ctx, query,
		expertID,
		models.StatusConfirmed,
		nullable(meetingLink),
		nullable(eventID),
		meetingTime,
		time.Now(),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to assign booking: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateBookingStatus sets the status only; expert, meeting link and
// date are left untouched.
func (db *DB) UpdateBookingStatus(ctx context.Context, id, status string) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`

	result, err := db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
