package models

import "time"

// Profile is an authenticated customer account, owned by the auth
// provider. Bookings reference it for logged-in submissions.
type Profile struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
