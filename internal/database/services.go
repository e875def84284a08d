package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wellspring/internal/models"
)

func (db *DB) CreateService(ctx context.Context, service *models.Service) error {
	query := `INSERT INTO services (id, title, description, category, price, duration, gradient, image_url, is_active, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now()
	_, err := db.ExecContext(ctx, query,
		service.ID,
		service.Title,
		nullable(service.Description),
		nullable(service.Category),
		service.Price,
		nullable(service.Duration),
		nullable(service.Gradient),
		nullable(service.ImageURL),
		service.IsActive,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	service.CreatedAt = now
	service.UpdatedAt = now
	return nil
}

func (db *DB) GetService(ctx context.Context, id string) (*models.Service, error) {
	query := `SELECT id, title, description, category, price, duration, gradient, image_url, is_active, created_at, updated_at
        FROM services WHERE id = ?`

	service, err := scanService(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return service, nil
}

// ListServices returns the catalog. With activeOnly, inactive services
// are filtered out (they stay referenced by historical bookings).
func (db *DB) ListServices(ctx context.Context, activeOnly bool) ([]*models.Service, error) {
	query := `SELECT id, title, description, category, price, duration, gradient, image_url, is_active, created_at, updated_at
        FROM services`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY created_at`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return services, nil
}

func (db *DB) UpdateService(ctx context.Context, service *models.Service) error {
	query := `UPDATE services
        SET title = ?, description = ?, category = ?, price = ?, duration = ?, gradient = ?, image_url = ?, is_active = ?, updated_at = ?
        WHERE id = ?`

	result, err := db.ExecContext(ctx, query,
		service.Title,
		nullable(service.Description),
		nullable(service.Category),
		service.Price,
		nullable(service.Duration),
		nullable(service.Gradient),
		nullable(service.ImageURL),
		service.IsActive,
		time.Now(),
		service.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeleteService(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) CountServices(ctx context.Context) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM services`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	return count, nil
}

// SeedServices bulk-inserts the default catalog in one transaction.
func (db *DB) SeedServices(ctx context.Context, services []*models.Service) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO services (id, title, description, category, price, duration, gradient, image_url, is_active, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now()
	for _, service := range services {
		_, err := tx.ExecContext(ctx, query,
			service.ID,
			service.Title,
			nullable(service.Description),
			nullable(service.Category),
			service.Price,
			nullable(service.Duration),
			nullable(service.Gradient),
			nullable(service.ImageURL),
			service.IsActive,
			now,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to seed service %q: %w", service.Title, err)
		}
	}

	return tx.Commit()
}

func scanService(row interface{ Scan(...any) error }) (*models.Service, error) {
	var s models.Service
	var description, category, duration, gradient, imageURL sql.NullString

	err := row.Scan(&s.ID, &s.Title, &description, &category, &s.Price, &duration, &gradient, &imageURL, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	s.Description = description.String
	s.Category = category.String
	s.Duration = duration.String
	s.Gradient = gradient.String
	s.ImageURL = imageURL.String
	return &s, nil
}
