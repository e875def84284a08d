package models

import "time"

// Customer is a derived grouping of bookings by resolved email. It is
// recomputed on every read and never persisted.
type Customer struct {
	ID       string     `json:"id"` // the resolved email
	FullName string     `json:"full_name"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone,omitempty"`
	Bookings []*Booking `json:"bookings"`
}

// GalleryImage is an object storage entry with its public URL.
type GalleryImage struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// AdminSession is the server-side record behind an issued admin token.
type AdminSession struct {
	Email    string    `json:"email"`
	IssuedAt time.Time `json:"issued_at"`
}
