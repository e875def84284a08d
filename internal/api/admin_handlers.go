package api

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"wellspring/internal/models"
)

// routeAdmin dispatches authenticated admin requests by path.
func (s *Server) routeAdmin(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/admin/")

	switch {
	case path == "logout":
		s.handleLogout(w, r)
	case path == "bookings":
		s.handleAdminBookings(w, r)
	case path == "bookings/assign":
		s.handleAssign(w, r)
	case path == "bookings/status":
		s.handleStatus(w, r)
	case path == "customers":
		s.handleCustomers(w, r)
	case path == "experts":
		s.handleAdminExperts(w, r)
	case strings.HasPrefix(path, "experts/") && strings.HasSuffix(path, "/photo"):
		s.handleExpertPhoto(w, r, strings.TrimSuffix(strings.TrimPrefix(path, "experts/"), "/photo"))
	case strings.HasPrefix(path, "experts/"):
		s.handleAdminExpert(w, r, strings.TrimPrefix(path, "experts/"))
	case path == "services":
		s.handleAdminServices(w, r)
	case path == "services/seed":
		s.handleSeedServices(w, r)
	case strings.HasPrefix(path, "services/"):
		s.handleAdminService(w, r, strings.TrimPrefix(path, "services/"))
	case path == "gallery":
		s.handleAdminGallery(w, r)
	case strings.HasPrefix(path, "gallery/"):
		s.handleAdminGalleryImage(w, r, strings.TrimPrefix(path, "gallery/"))
	case path == "export/bookings":
		s.handleExportBookings(w, r)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) handleAdminBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	bookings, err := s.bookings.ListBookings(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

// handleAssign runs the expert-assignment workflow for one booking.
func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	type request struct {
		BookingID string `json:"booking_id"`
		ExpertID  string `json:"expert_id"`
		Date      string `json:"meeting_date"`
		Slot      string `json:"meeting_slot"`
	}

	var body request
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Unlike the public booking form, an assignment always pins a
	// concrete meeting time, so the slot is mandatory here.
	if body.Slot == "" {
		writeError(w, http.StatusBadRequest, "meeting_slot is required")
		return
	}
	meetingTime, err := parseDateSlot(body.Date, body.Slot)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.assignments.Assign(r.Context(), body.BookingID, body.ExpertID, meetingTime)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if sess := sessionFromContext(r.Context()); sess != nil {
		s.logger.Info().Str("admin", sess.Email).Str("booking_id", body.BookingID).Str("expert_id", body.ExpertID).Msg("booking assigned")
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	type request struct {
		BookingID string `json:"booking_id"`
		Status    string `json:"status"`
	}

	var body request
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.statuses.SetStatus(r.Context(), body.BookingID, body.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": body.Status})
}

func (s *Server) handleCustomers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	customers, err := s.customers.Customers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"customers": customers})
}

func (s *Server) handleAdminExperts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		experts, err := s.experts.List(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"experts": experts})
	case http.MethodPost:
		var expert models.Expert
		if err := json.NewDecoder(r.Body).Decode(&expert); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		created, err := s.experts.Create(r.Context(), &expert)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleAdminExpert(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		expert, err := s.experts.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, expert)
	case http.MethodPut:
		var expert models.Expert
		if err := json.NewDecoder(r.Body).Decode(&expert); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		expert.ID = id
		if err := s.experts.Update(r.Context(), &expert); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, expert)
	case http.MethodDelete:
		if err := s.experts.Delete(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

const maxUploadBytes = 10 << 20

func (s *Server) handleExpertPhoto(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	file, header, err := uploadedFile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer file.Close()

	url, err := s.experts.UploadPhoto(r.Context(), id, header.Filename, file)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"image_url": url})
}

func (s *Server) handleAdminServices(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		// Admin sees inactive services too.
		services, err := s.catalog.List(r.Context(), false)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"services": services})
	case http.MethodPost:
		var svc models.Service
		if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		created, err := s.catalog.Create(r.Context(), &svc)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleAdminService(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		svc, err := s.catalog.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, svc)
	case http.MethodPut:
		var svc models.Service
		if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		svc.ID = id
		if err := s.catalog.Update(r.Context(), &svc); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, svc)
	case http.MethodDelete:
		if err := s.catalog.Delete(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleSeedServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	n, err := s.catalog.SeedDefaults(r.Context(), s.catalogPath)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"seeded": n})
}

func (s *Server) handleAdminGallery(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		images, err := s.gallery.Images(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"images": images})
	case http.MethodPost:
		file, header, err := uploadedFile(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		defer file.Close()

		img, err := s.gallery.Upload(r.Context(), header.Filename, file)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, img)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleAdminGalleryImage(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := s.gallery.Remove(r.Context(), name); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleExportBookings writes an XLSX snapshot of bookings and the
// derived customer list and returns the file.
func (s *Server) handleExportBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	bookings, err := s.bookings.ListBookings(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	customers, err := s.customers.Customers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	path, err := s.exporter.Bookings(r.Context(), bookings, customers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"file": path})
}

// uploadedFile extracts the "file" part of a multipart upload.
func uploadedFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, errors.New("invalid multipart body")
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, errors.New("file part is required")
	}
	return file, header, nil
}
