package repository

import (
	"context"
	"sync"
	"time"

	"wellspring/internal/models"
)

// MemorySessionRepository is the in-process SessionStore used when no
// Redis is configured and as the test double in unit tests.
type MemorySessionRepository struct {
	sessions sync.Map
}

type sessionEntry struct {
	session   *models.AdminSession
	expiresAt time.Time
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{}
}

func (r *MemorySessionRepository) Put(ctx context.Context, tokenID string, session *models.AdminSession, ttl time.Duration) error {
	r.sessions.Store(tokenID, &sessionEntry{session: session, expiresAt: time.Now().Add(ttl)})
	return nil
}

func (r *MemorySessionRepository) Get(ctx context.Context, tokenID string) (*models.AdminSession, error) {
	val, ok := r.sessions.Load(tokenID)
	if !ok {
		return nil, nil
	}

	entry := val.(*sessionEntry)
	if time.Now().After(entry.expiresAt) {
		r.sessions.Delete(tokenID)
		return nil, nil
	}
	return entry.session, nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context, tokenID string) error {
	r.sessions.Delete(tokenID)
	return nil
}
