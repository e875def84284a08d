package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"wellspring/internal/config"
	"wellspring/internal/domain"
	"wellspring/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuthService issues and verifies admin tokens. There is a single
// admin identity from configuration; tokens are JWTs whose jti is
// also written to the session store so a logout revokes the token
// before its expiry.
type AuthService struct {
	cfg      config.AuthConfig
	sessions domain.SessionStore
	logger   *zerolog.Logger
}

// Claims is the JWT payload for admin tokens.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func NewAuthService(cfg config.AuthConfig, sessions domain.SessionStore, logger *zerolog.Logger) *AuthService {
	return &AuthService{cfg: cfg, sessions: sessions, logger: logger}
}

// Login checks the credentials against configuration and on success
// issues a signed token backed by a server-side session.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.cfg.AdminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	if !emailOK || !passOK {
		s.logger.Warn().Str("email", email).Msg("failed admin login attempt")
		return "", ErrUnauthorized
	}

	now := time.Now()
	ttl := time.Duration(s.cfg.SessionTTL) * time.Hour
	tokenID := uuid.NewString()

	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	session := &models.AdminSession{Email: email, IssuedAt: now}
	if err := s.sessions.Put(ctx, tokenID, session, ttl); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info().Str("email", email).Msg("admin logged in")
	return token, nil
}

// Verify validates a token's signature and expiry, then checks the
// session store: a signed but logged-out token is rejected.
func (s *AuthService) Verify(ctx context.Context, token string) (*models.AdminSession, error) {
	claims, err := s.parseClaims(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	session, err := s.sessions.Get(ctx, claims.ID)
	if err != nil || session == nil {
		return nil, ErrUnauthorized
	}
	return session, nil
}

// Logout revokes the session behind a token. An already invalid token
// is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.parseClaims(token)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, claims.ID)
}

func (s *AuthService) parseClaims(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ID == "" {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
