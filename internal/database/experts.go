package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wellspring/internal/models"
)

// Certifications and description paragraphs are stored as JSON arrays
// in TEXT columns.

func (db *DB) CreateExpert(ctx context.Context, expert *models.Expert) error {
	certs, descr, err := marshalExpertLists(expert)
	if err != nil {
		return err
	}

	query := `INSERT INTO experts (id, name, email, title, image_url, certifications, description, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now()
	_, err = db.ExecContext(ctx, query,
		expert.ID,
		expert.Name,
		nullable(expert.Email),
		expert.Title,
		nullable(expert.ImageURL),
		certs,
		descr,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create expert: %w", err)
	}

	expert.CreatedAt = now
	expert.UpdatedAt = now
	return nil
}

func (db *DB) GetExpert(ctx context.Context, id string) (*models.Expert, error) {
	query := `SELECT id, name, email, title, image_url, certifications, description, created_at, updated_at
        FROM experts WHERE id = ?`

	expert, err := scanExpert(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expert: %w", err)
	}
	return expert, nil
}

func (db *DB) ListExperts(ctx context.Context) ([]*models.Expert, error) {
	query := `SELECT id, name, email, title, image_url, certifications, description, created_at, updated_at
        FROM experts ORDER BY created_at`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list experts: %w", err)
	}
	defer rows.Close()

	var experts []*models.Expert
	for rows.Next() {
		expert, err := scanExpert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expert: %w", err)
		}
		experts = append(experts, expert)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return experts, nil
}

func (db *DB) UpdateExpert(ctx context.Context, expert *models.Expert) error {
	certs, descr, err := marshalExpertLists(expert)
	if err != nil {
		return err
	}

	query := `UPDATE experts
        SET name = ?, email = ?, title = ?, image_url = ?, certifications = ?, description = ?, updated_at = ?
        WHERE id = ?`

	result, err := db.ExecContext(ctx, query,
		expert.Name,
		nullable(expert.Email),
		expert.Title,
		nullable(expert.ImageURL),
		certs,
		descr,
		time.Now(),
		expert.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expert: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeleteExpert(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM experts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expert: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanExpert(row interface{ Scan(...any) error }) (*models.Expert, error) {
	var e models.Expert
	var email, imageURL sql.NullString
	var certs, descr string

	err := row.Scan(&e.ID, &e.Name, &email, &e.Title, &imageURL, &certs, &descr, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}

	e.Email = email.String
	e.ImageURL = imageURL.String
	if err := json.Unmarshal([]byte(certs), &e.Certifications); err != nil {
		return nil, fmt.Errorf("failed to decode certifications: %w", err)
	}
	if err := json.Unmarshal([]byte(descr), &e.Description); err != nil {
		return nil, fmt.Errorf("failed to decode description: %w", err)
	}
	return &e, nil
}

func marshalExpertLists(expert *models.Expert) (string, string, error) {
	if expert.Certifications == nil {
		expert.Certifications = []string{}
	}
	if expert.Description == nil {
		expert.Description = []string{}
	}

	certs, err := json.Marshal(expert.Certifications)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode certifications: %w", err)
	}
	descr, err := json.Marshal(expert.Description)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode description: %w", err)
	}
	return string(certs), string(descr), nil
}
