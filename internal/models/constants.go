package models

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the booking statuses the
// admin surface may set. There is no transition graph: any status may
// move to any other.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Object storage buckets.
const (
	BucketExperts = "experts"
	BucketGallery = "gallery"
	BucketStatic  = "static-assets"
)

const (
	// GalleryMaxImages caps concurrently stored gallery images.
	// Enforced at upload time only.
	GalleryMaxImages = 10

	// DefaultSessionTTLHours is the admin session lifetime.
	DefaultSessionTTLHours = 24
)
