package service

import "errors"

var (
	// ErrValidation marks missing or malformed caller input; the
	// caller re-prompts, nothing was persisted.
	ErrValidation = errors.New("missing required fields")

	// ErrServiceInactive rejects visitor bookings for retired
	// catalog entries.
	ErrServiceInactive = errors.New("service is not bookable")

	// ErrGalleryFull is returned once the gallery holds the maximum
	// number of images.
	ErrGalleryFull = errors.New("gallery image limit reached")

	// ErrCatalogNotEmpty guards the default-catalog reseed.
	ErrCatalogNotEmpty = errors.New("service catalog is not empty")

	// ErrUnauthorized covers bad admin credentials and dead sessions.
	ErrUnauthorized = errors.New("unauthorized")
)
