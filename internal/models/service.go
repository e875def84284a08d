package models

import "time"

// Service is a bookable offering in the catalog. Price is in currency
// minor units; 0 means free. Duration is a display label, not a
// machine-checkable duration.
type Service struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Category    string    `json:"category" yaml:"category"`
	Price       int64     `json:"price" yaml:"price"`
	Duration    string    `json:"duration" yaml:"duration"`
	Gradient    string    `json:"gradient,omitempty" yaml:"gradient"`
	ImageURL    string    `json:"image_url,omitempty" yaml:"image_url"`
	IsActive    bool      `json:"is_active" yaml:"is_active"`
	CreatedAt   time.Time `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"-"`
}
