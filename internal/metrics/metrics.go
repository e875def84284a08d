package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wellspring",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wellspring",
			Name:      "bookings_created_total",
			Help:      "Visitor booking submissions.",
		},
	)

	assignments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wellspring",
			Name:      "assignments_total",
			Help:      "Expert assignment workflow runs by result.",
		},
		[]string{"result"},
	)

	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wellspring",
			Name:      "notifications_total",
			Help:      "Best-effort external notifications by channel and result.",
		},
		[]string{"channel", "result"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, assignments, notifications)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncBookingCreated counts a visitor submission.
func IncBookingCreated() {
	bookingsCreated.Inc()
}

// IncAssignment counts an assignment workflow run ("ok" or "error").
func IncAssignment(result string) {
	assignments.WithLabelValues(result).Inc()
}

// IncNotification counts a calendar or email attempt.
func IncNotification(channel, result string) {
	notifications.WithLabelValues(channel, result).Inc()
}
