package service

import (
	"context"
	"io"
	"time"

	"wellspring/internal/domain"
	"wellspring/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockRepo) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockRepo) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *mockRepo) AssignBooking(ctx context.Context, id, expertID, meetingLink, eventID string, meetingTime time.Time) error {
	return m.Called(ctx, id, expertID, meetingLink, eventID, meetingTime).Error(0)
}
func (m *mockRepo) UpdateBookingStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *mockRepo) CreateExpert(ctx context.Context, e *models.Expert) error {
	return m.Called(ctx, e).Error(0)
}
func (m *mockRepo) GetExpert(ctx context.Context, id string) (*models.Expert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expert), args.Error(1)
}
func (m *mockRepo) ListExperts(ctx context.Context) ([]*models.Expert, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Expert), args.Error(1)
}
func (m *mockRepo) UpdateExpert(ctx context.Context, e *models.Expert) error {
	return m.Called(ctx, e).Error(0)
}
func (m *mockRepo) DeleteExpert(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockRepo) CreateService(ctx context.Context, s *models.Service) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockRepo) GetService(ctx context.Context, id string) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}
func (m *mockRepo) ListServices(ctx context.Context, activeOnly bool) ([]*models.Service, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Service), args.Error(1)
}
func (m *mockRepo) UpdateService(ctx context.Context, s *models.Service) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockRepo) DeleteService(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockRepo) CountServices(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *mockRepo) SeedServices(ctx context.Context, services []*models.Service) error {
	return m.Called(ctx, services).Error(0)
}
func (m *mockRepo) CreateProfile(ctx context.Context, p *models.Profile) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockRepo) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

type mockCalendar struct {
	mock.Mock
}

func (m *mockCalendar) CreateEvent(ctx context.Context, meeting domain.Meeting) (string, string, error) {
	args := m.Called(ctx, meeting)
	return args.String(0), args.String(1), args.Error(2)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to []string, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

type mockEventBus struct {
	mock.Mock
}

func (m *mockEventBus) PublishJSON(eventType string, payload interface{}) error {
	return m.Called(eventType, payload).Error(0)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Upload(ctx context.Context, bucket, name string, r io.Reader) error {
	return m.Called(ctx, bucket, name, r).Error(0)
}
func (m *mockStore) List(ctx context.Context, bucket string) ([]models.GalleryImage, error) {
	args := m.Called(ctx, bucket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GalleryImage), args.Error(1)
}
func (m *mockStore) Remove(ctx context.Context, bucket, name string) error {
	return m.Called(ctx, bucket, name).Error(0)
}
func (m *mockStore) PublicURL(bucket, name string) string {
	return m.Called(bucket, name).String(0)
}

type mockSessions struct {
	mock.Mock
}

func (m *mockSessions) Put(ctx context.Context, tokenID string, session *models.AdminSession, ttl time.Duration) error {
	return m.Called(ctx, tokenID, session, ttl).Error(0)
}
func (m *mockSessions) Get(ctx context.Context, tokenID string) (*models.AdminSession, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminSession), args.Error(1)
}
func (m *mockSessions) Delete(ctx context.Context, tokenID string) error {
	return m.Called(ctx, tokenID).Error(0)
}
