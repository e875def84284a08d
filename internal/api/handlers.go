package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"wellspring/internal/schedule"
	"wellspring/internal/service"
)

var errInvalidDate = errors.New("invalid date format; expected YYYY-MM-DD")

// handleCreateBooking accepts a visitor's booking form. Contact
// details travel in the body and are folded into the stored notes.
func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	type request struct {
		ServiceID string `json:"service_id"`
		ProfileID string `json:"profile_id"`
		Date      string `json:"date"`
		Slot      string `json:"slot"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Age       string `json:"age"`
		Concern   string `json:"concern"`
	}

	var body request
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	date, err := parseDateSlot(body.Date, body.Slot)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.bookings.CreateBooking(r.Context(), service.BookingRequest{
		ServiceID: body.ServiceID,
		ProfileID: body.ProfileID,
		Date:      date,
		Name:      body.Name,
		Email:     body.Email,
		Phone:     body.Phone,
		Age:       body.Age,
		Concern:   body.Concern,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) handlePublicServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	services, err := s.catalog.List(r.Context(), true)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": services})
}

func (s *Server) handlePublicExperts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	experts, err := s.experts.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"experts": experts})
}

func (s *Server) handlePublicGallery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	images, err := s.gallery.Images(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"images": images})
}

// handleSlots returns the fixed daily slot grid. The grid does not
// depend on the date; bookings are not capacity-checked against it.
func (s *Server) handleSlots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slots": schedule.DefaultSlots()})
}

// parseDateSlot combines a YYYY-MM-DD date and an HH:MM slot value
// into the booking instant. The slot is optional; without it the
// booking lands at midnight UTC of the chosen day.
func parseDateSlot(dateStr, slot string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	if slot == "" {
		return date, nil
	}
	return schedule.MeetingTime(date, slot)
}
