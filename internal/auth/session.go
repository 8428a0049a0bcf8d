package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/maisonlux/storefront/internal/config"
	"github.com/maisonlux/storefront/internal/models"
)

// SessionAPI verifies the session against the upstream account service.
type SessionAPI interface {
	CheckSession(ctx context.Context) (bool, error)
}

// Session tracks whether the visitor is signed in. A locally held token is
// validated offline first; the upstream check result is cached for the
// configured TTL so hot paths such as add-to-cart do not hammer the
// account service. Any verification error reads as signed out.
type Session struct {
	mu  sync.Mutex
	log *slog.Logger
	api SessionAPI

	jwtKey []byte
	ttl    time.Duration

	token     string
	claims    *models.Claims
	checked   bool
	result    bool
	checkedAt time.Time
}

func NewSession(cfg *config.Security, log *slog.Logger, api SessionAPI) *Session {
	return &Session{
		log:    log,
		api:    api,
		jwtKey: []byte(cfg.JWTKey),
		ttl:    cfg.SessionTTL,
	}
}

// SetToken installs a bearer token after offline validation. An invalid or
// expired token clears the session instead.
func (s *Session) SetToken(token string) error {
	claims, err := s.parseToken(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.checked = false

	if err != nil {
		s.token = ""
		s.claims = nil

		return err
	}

	s.token = token
	s.claims = claims

	return nil
}

func (s *Session) ClearToken() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.claims = nil
	s.checked = false
}

// Claims returns the parsed claims of the installed token, if any.
func (s *Session) Claims() (*models.Claims, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.claims == nil {
		return nil, false
	}

	return s.claims, true
}

// IsAuthenticated reports the session state. Within the cache window the
// last upstream answer is reused; outside it the upstream is asked again.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	s.mu.Lock()

	if s.token == "" {
		s.mu.Unlock()

		return false
	}

	if s.claims != nil && s.claims.ExpiresAt != nil && time.Now().After(s.claims.ExpiresAt.Time) {
		s.token = ""
		s.claims = nil
		s.checked = false
		s.mu.Unlock()

		return false
	}

	if s.checked && time.Since(s.checkedAt) < s.ttl {
		result := s.result
		s.mu.Unlock()

		return result
	}

	s.mu.Unlock()

	ok, err := s.api.CheckSession(ctx)
	if err != nil {
		s.log.Warn("session check failed", slog.String("error", err.Error()))

		ok = false
	}

	s.mu.Lock()
	s.checked = true
	s.result = ok
	s.checkedAt = time.Now()
	s.mu.Unlock()

	return ok
}

func (s *Session) parseToken(token string) (*models.Claims, error) {
	claims := &models.Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return s.jwtKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
