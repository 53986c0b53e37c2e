package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manosay/manosay/backend/go-services/internal/credentials"
	"github.com/manosay/manosay/backend/go-services/internal/models"
	"github.com/manosay/manosay/backend/go-services/internal/sessions"
	"github.com/manosay/manosay/backend/go-services/pkg/logger"
)

const (
	accountKey = "account"
	sessionKey = "session"
)

// SessionValidator decodes admin session tokens.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*sessions.Session, error)
}

// AccountLookup resolves the account a session belongs to.
type AccountLookup interface {
	GetByID(ctx context.Context, id string) (*models.Account, error)
}

// DenyFunc answers a request that has no usable admin session.
type DenyFunc func(c *gin.Context)

// RedirectTo sends browsers to the login page.
func RedirectTo(location string) DenyFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusFound, location)
		c.Abort()
	}
}

// Unauthorized rejects API-style requests with 401.
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
}

// AdminGuard checks the admin_session cookie. The token alone is not
// trusted: the account is looked up on every request and must still be an
// admin.
type AdminGuard struct {
	sessions SessionValidator
	accounts AccountLookup
}

func NewAdminGuard(s SessionValidator, a AccountLookup) *AdminGuard {
	return &AdminGuard{sessions: s, accounts: a}
}

// Current returns the admin behind the request cookie, or nil when there is
// none. Errors are only returned for failures other than a bad session.
func (g *AdminGuard) Current(c *gin.Context) (*models.Account, *sessions.Session, error) {
	token, err := c.Cookie(sessions.CookieName)
	if err != nil || token == "" {
		return nil, nil, nil
	}
	s, err := g.sessions.Validate(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, credentials.ErrExpired) || errors.Is(err, credentials.ErrInvalidToken) || errors.Is(err, sessions.ErrRevoked) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	a, err := g.accounts.GetByID(c.Request.Context(), s.AccountID)
	if err != nil {
		return nil, nil, err
	}
	if !a.IsAdmin() {
		return nil, nil, nil
	}
	return a, s, nil
}

// Require aborts with deny unless the request carries a valid admin
// session. On success the account and session are stored on the context.
func (g *AdminGuard) Require(deny DenyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, s, err := g.Current(c)
		if err != nil {
			logger.Warnf("admin session check failed: %v", err)
		}
		if a == nil {
			deny(c)
			return
		}
		c.Set(accountKey, a)
		c.Set(sessionKey, s)
		c.Next()
	}
}

// AccountFrom returns the admin set by Require.
func AccountFrom(c *gin.Context) *models.Account {
	if v, ok := c.Get(accountKey); ok {
		if a, ok := v.(*models.Account); ok {
			return a
		}
	}
	return nil
}

// SessionFrom returns the session set by Require.
func SessionFrom(c *gin.Context) *sessions.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*sessions.Session); ok {
			return s
		}
	}
	return nil
}
