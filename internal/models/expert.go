package models

import "time"

type Expert struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Title          string    `json:"title"`
	ImageURL       string    `json:"image_url,omitempty"`
	Certifications []string  `json:"certifications"`
	Description    []string  `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
