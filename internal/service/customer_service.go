package service

import (
	"context"

	"wellspring/internal/domain"
	"wellspring/internal/models"
	"wellspring/internal/notes"
)

// CustomerService derives the CRM customer list from bookings. There
// is no customers table: every read regroups all bookings by resolved
// email, so the view is always consistent with the booking data.
type CustomerService struct {
	repo domain.Repository
}

func NewCustomerService(repo domain.Repository) *CustomerService {
	return &CustomerService{repo: repo}
}

// Customers groups bookings into per-customer records keyed by the
// resolved email, exactly as stored: no case folding or other
// normalization, so differently cased addresses stay distinct
// customers. A non-empty notes email resolves the whole identity from
// the notes, even where the notes name or phone is empty; only when
// the notes carry no email does the linked profile supply all three
// fields. Bookings where neither yields an email are left out
// entirely. Name and phone come from the first booking seen for an
// email and are never overwritten by later ones.
func (s *CustomerService) Customers(ctx context.Context) ([]*models.Customer, error) {
	bookings, err := s.repo.ListBookings(ctx)
	if err != nil {
		return nil, err
	}

	byEmail := make(map[string]*models.Customer)
	var order []string

	for _, b := range bookings {
		parsed := notes.Decode(b.CustomerNotes)

		var email, name, phone string
		if parsed.Email != "" {
			email = parsed.Email
			name = parsed.Name
			phone = parsed.Phone
		} else if b.Profile != nil {
			email = b.Profile.Email
			name = b.Profile.FullName
			phone = b.Profile.Phone
		}
		if email == "" {
			continue
		}

		c, ok := byEmail[email]
		if !ok {
			c = &models.Customer{
				ID:       email,
				FullName: name,
				Email:    email,
				Phone:    phone,
			}
			byEmail[email] = c
			order = append(order, email)
		}
		c.Bookings = append(c.Bookings, b)
	}

	// ListBookings is newest-first, so first-seen order already puts
	// recently active customers on top.
	customers := make([]*models.Customer, 0, len(byEmail))
	for _, email := range order {
		customers = append(customers, byEmail[email])
	}
	return customers, nil
}
