package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"wellspring/internal/config"
	"wellspring/internal/database"
	"wellspring/internal/events"
	"wellspring/internal/export"
	"wellspring/internal/models"
	"wellspring/internal/repository"
	"wellspring/internal/service"
	"wellspring/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdminEmail    = "admin@wellspring.test"
	testAdminPassword = "s3cret"
)

func newTestServer(t *testing.T) (*Server, *database.DB) {
	t.Helper()
	logger := zerolog.New(io.Discard)

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := storage.NewFileStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	authCfg := config.AuthConfig{
		AdminEmail:    testAdminEmail,
		AdminPassword: testAdminPassword,
		JWTSecret:     "test-signing-key",
		SessionTTL:    1,
	}

	bus := events.NewEventBus()
	catalogPath := filepath.Join(t.TempDir(), "services.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(testSeedYAML), 0o644))

	deps := Deps{
		Bookings:    service.NewBookingService(db, bus, &logger),
		Assignments: service.NewAssignmentService(db, nil, nil, bus, &logger),
		Statuses:    service.NewStatusService(db, bus, &logger),
		Customers:   service.NewCustomerService(db),
		Experts:     service.NewExpertService(db, store, &logger),
		Catalog:     service.NewCatalogService(db, &logger),
		Gallery:     service.NewGalleryService(store, &logger),
		Auth:        service.NewAuthService(authCfg, repository.NewMemorySessionRepository(), &logger),
		Exporter:    export.NewExporter(t.TempDir(), &logger),
		CatalogPath: catalogPath,
	}

	srv := NewServer(config.ServerConfig{Port: 0}, deps, &logger)
	return srv, db
}

const testSeedYAML = `services:
  - id: tarot
    title: Tarot Reading
    category: divination
    price: 500
    duration: 60 min
    is_active: true
  - id: mindfulness
    title: Mindfulness
    category: wellness
    price: 400
    duration: 60 min
    is_active: true
`

func login(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	resp, err := http.Post(ts.URL+"/api/v1/admin/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func adminReq(t *testing.T, ts *httptest.Server, token, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func seedCatalog(t *testing.T, ts *httptest.Server, token string) {
	t.Helper()
	resp := adminReq(t, ts, token, http.MethodPost, "/api/v1/admin/services/seed", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminRequiresToken(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/api/v1/admin/bookings")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/admin/bookings", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}

func TestLoginBadCredentials(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	body, _ := json.Marshal(map[string]string{"email": testAdminEmail, "password": "wrong"})
	resp, err := http.Post(ts.URL+"/api/v1/admin/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutRevokesToken(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	token := login(t, ts)

	resp := adminReq(t, ts, token, http.MethodPost, "/api/v1/admin/logout", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = adminReq(t, ts, token, http.MethodGet, "/api/v1/admin/bookings", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestBookingFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	token := login(t, ts)
	seedCatalog(t, ts, token)

	// Visitor submits a booking against a seeded service.
	payload := map[string]string{
		"service_id": "tarot",
		"date":       "2026-10-02",
		"slot":       "14:30",
		"name":       "Ana Silva",
		"email":      "ana@example.com",
		"phone":      "555-0101",
		"age":        "34",
		"concern":    "feeling stuck",
	}
	raw, _ := json.Marshal(payload)
	resp, err := http.Post(ts.URL+"/api/v1/bookings", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var booking models.Booking
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&booking))
	assert.Equal(t, models.StatusPending, booking.Status)
	assert.Contains(t, booking.CustomerNotes, "Email: ana@example.com")

	// Admin sees it in the triage list.
	listResp := adminReq(t, ts, token, http.MethodGet, "/api/v1/admin/bookings", nil)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var list struct {
		Bookings []*models.Booking `json:"bookings"`
	}
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	require.Len(t, list.Bookings, 1)

	// And in the derived customer list.
	custResp := adminReq(t, ts, token, http.MethodGet, "/api/v1/admin/customers", nil)
	defer custResp.Body.Close()
	var customers struct {
		Customers []*models.Customer `json:"customers"`
	}
	require.NoError(t, json.NewDecoder(custResp.Body).Decode(&customers))
	require.Len(t, customers.Customers, 1)
	assert.Equal(t, "ana@example.com", customers.Customers[0].Email)
}

func TestAssignWithoutCalendar(t *testing.T) {
	srv, db := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	token := login(t, ts)
	seedCatalog(t, ts, token)

	expertResp := adminReq(t, ts, token, http.MethodPost, "/api/v1/admin/experts", map[string]any{
		"name":  "Dana Reyes",
		"email": "dana@wellspring.test",
		"title": "Senior Coach",
	})
	defer expertResp.Body.Close()
	require.Equal(t, http.StatusCreated, expertResp.StatusCode)
	var expert models.Expert
	require.NoError(t, json.NewDecoder(expertResp.Body).Decode(&expert))

	raw, _ := json.Marshal(map[string]string{
		"service_id": "tarot",
		"date":       "2026-10-02",
		"slot":       "14:30",
		"name":       "Ana",
		"email":      "ana@example.com",
	})
	bookResp, err := http.Post(ts.URL+"/api/v1/bookings", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer bookResp.Body.Close()
	var booking models.Booking
	require.NoError(t, json.NewDecoder(bookResp.Body).Decode(&booking))

	assignResp := adminReq(t, ts, token, http.MethodPost, "/api/v1/admin/bookings/assign", map[string]string{
		"booking_id":   booking.ID,
		"expert_id":    expert.ID,
		"meeting_date": "2026-10-02",
		"meeting_slot": "15:00",
	})
	defer assignResp.Body.Close()
	require.Equal(t, http.StatusOK, assignResp.StatusCode)

	stored, err := db.GetBooking(t.Context(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
	assert.Equal(t, expert.ID, stored.ExpertID)
	assert.Empty(t, stored.MeetingLink)
	assert.True(t, stored.BookingDate.Equal(time.Date(2026, 10, 2, 15, 0, 0, 0, time.UTC)))
}

func TestAssignValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	token := login(t, ts)

	resp := adminReq(t, ts, token, http.MethodPost, "/api/v1/admin/bookings/assign", map[string]string{
		"booking_id":   "",
		"expert_id":    "e",
		"meeting_date": "2026-10-02",
		"meeting_slot": "15:00",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// A missing slot would otherwise land the meeting at midnight, a
	// time no slot grid produces, so it is rejected up front.
	resp = adminReq(t, ts, token, http.MethodPost, "/api/v1/admin/bookings/assign", map[string]string{
		"booking_id":   "b",
		"expert_id":    "e",
		"meeting_date": "2026-10-02",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatusEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	token := login(t, ts)
	seedCatalog(t, ts, token)

	raw, _ := json.Marshal(map[string]string{
		"service_id": "tarot",
		"date":       "2026-10-02",
		"name":       "Ana",
		"email":      "ana@example.com",
	})
	bookResp, err := http.Post(ts.URL+"/api/v1/bookings", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer bookResp.Body.Close()
	var booking models.Booking
	require.NoError(t, json.NewDecoder(bookResp.Body).Decode(&booking))

	resp := adminReq(t, ts, token, http.MethodPost, "/api/v1/admin/bookings/status", map[string]string{
		"booking_id": booking.ID,
		"status":     "cancelled",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = adminReq(t, ts, token, http.MethodPost, "/api/v1/admin/bookings/status", map[string]string{
		"booking_id": booking.ID,
		"status":     "archived",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPublicServicesListsActiveOnly(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	token := login(t, ts)
	seedCatalog(t, ts, token)

	// Deactivate one seeded service through the admin surface.
	resp := adminReq(t, ts, token, http.MethodPut, "/api/v1/admin/services/tarot", map[string]any{
		"title":     "Tarot Reading",
		"category":  "divination",
		"price":     500,
		"duration":  "60 min",
		"is_active": false,
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	pubResp, err := http.Get(ts.URL + "/api/v1/services")
	require.NoError(t, err)
	defer pubResp.Body.Close()

	var out struct {
		Services []*models.Service `json:"services"`
	}
	require.NoError(t, json.NewDecoder(pubResp.Body).Decode(&out))
	require.Len(t, out.Services, 1)
	assert.Equal(t, "mindfulness", out.Services[0].ID)
}

func TestSeedTwiceConflicts(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	token := login(t, ts)
	seedCatalog(t, ts, token)

	resp := adminReq(t, ts, token, http.MethodPost, "/api/v1/admin/services/seed", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSlotsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/api/v1/slots")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Slots []struct {
			Value string `json:"value"`
			Label string `json:"label"`
		} `json:"slots"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Slots, 29)
	assert.Equal(t, "08:00", out.Slots[0].Value)
	assert.Equal(t, "10:00 PM", out.Slots[len(out.Slots)-1].Label)
}

func TestGalleryUploadAndRemove(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	token := login(t, ts)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "studio.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("not-a-real-png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/admin/gallery", &buf)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var img models.GalleryImage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&img))
	assert.NotEmpty(t, img.Name)
	assert.Contains(t, img.URL, "/static/gallery/")

	delResp := adminReq(t, ts, token, http.MethodDelete, fmt.Sprintf("/api/v1/admin/gallery/%s", img.Name), nil)
	defer delResp.Body.Close()
	assert.Equal(t, http.StatusOK, delResp.StatusCode)

	pubResp, err := http.Get(ts.URL + "/api/v1/gallery")
	require.NoError(t, err)
	defer pubResp.Body.Close()
	var out struct {
		Images []models.GalleryImage `json:"images"`
	}
	require.NoError(t, json.NewDecoder(pubResp.Body).Decode(&out))
	assert.Empty(t, out.Images)
}

func TestExportEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	token := login(t, ts)
	resp := adminReq(t, ts, token, http.MethodPost, "/api/v1/admin/export/bookings", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		File string `json:"file"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.FileExists(t, out.File)
}
