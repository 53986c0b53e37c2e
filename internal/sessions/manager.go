package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/manosay/manosay/backend/go-services/internal/credentials"
	"github.com/manosay/manosay/backend/go-services/internal/models"
)

// CookieName is the admin session cookie.
const CookieName = "admin_session"

// ErrRevoked is returned for a token that was logged out.
var ErrRevoked = errors.New("session revoked")

// Session is the decoded content of a valid session token.
type Session struct {
	AccountID string
	Email     string
	Role      models.Role
	ExpiresAt time.Time
}

// Revoker tracks logged-out tokens.
type Revoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Manager issues and checks admin session tokens.
type Manager struct {
	issuer  *credentials.TokenIssuer
	revoked Revoker
	ttl     time.Duration
	now     func() time.Time
}

// NewManager returns a Manager. revoked may be nil when Redis is not configured.
func NewManager(issuer *credentials.TokenIssuer, revoked Revoker, ttl time.Duration) *Manager {
	if revoked == nil {
		revoked = NewRevocations(nil)
	}
	return &Manager{issuer: issuer, revoked: revoked, ttl: ttl, now: time.Now}
}

// TTL is the session lifetime, used as the cookie max-age.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue returns a signed session token for the account.
func (m *Manager) Issue(a *models.Account) (string, error) {
	if a == nil || a.ID.IsZero() {
		return "", errors.New("issue session: account without id")
	}
	return m.issuer.Issue(map[string]any{
		"sub":   a.ID.Hex(),
		"email": a.Email,
		"role":  string(a.Role),
	}, m.ttl)
}

// Validate decodes a session token. It returns credentials.ErrExpired,
// credentials.ErrInvalidToken or ErrRevoked for unusable tokens. The caller
// still has to confirm that the account exists and is an admin.
func (m *Manager) Validate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, credentials.ErrInvalidToken
	}
	claims, err := m.issuer.Validate(token)
	if err != nil {
		return nil, err
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: missing sub", credentials.ErrInvalidToken)
	}
	revoked, err := m.revoked.IsRevoked(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, ErrRevoked
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	s := &Session{AccountID: sub, Email: email, Role: models.ParseRole(role)}
	if exp, ok := claims["exp"].(float64); ok {
		s.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return s, nil
}

// Revoke invalidates token for the rest of its lifetime. Tokens that are
// already unusable need no entry.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	s, err := m.Validate(ctx, token)
	if err != nil {
		if errors.Is(err, credentials.ErrExpired) || errors.Is(err, credentials.ErrInvalidToken) || errors.Is(err, ErrRevoked) {
			return nil
		}
		return err
	}
	ttl := s.ExpiresAt.Sub(m.now())
	if ttl <= 0 {
		return nil
	}
	if err := m.revoked.Revoke(ctx, token, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
