package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wellspring/internal/models"
)

func (db *DB) CreateProfile(ctx context.Context, profile *models.Profile) error {
	query := `INSERT INTO profiles (id, full_name, email, phone, created_at) VALUES (?, ?, ?, ?, ?)`

	now := time.Now()
	_, err := db.ExecContext(ctx, query,
		profile.ID,
		profile.FullName,
		profile.Email,
		nullable(profile.Phone),
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	profile.CreatedAt = now
	return nil
}

func (db *DB) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT id, full_name, email, phone, created_at FROM profiles WHERE id = ?`

	var p models.Profile
	var phone sql.NullString
	err := db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.FullName, &p.Email, &phone, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	p.Phone = phone.String
	return &p, nil
}
