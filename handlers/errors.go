package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manosay/manosay/backend/go-services/internal/accounts"
	"github.com/manosay/manosay/backend/go-services/internal/credentials"
	"github.com/manosay/manosay/backend/go-services/internal/database"
	"github.com/manosay/manosay/backend/go-services/internal/mailer"
	"github.com/manosay/manosay/backend/go-services/internal/models"
	"github.com/manosay/manosay/backend/go-services/internal/posts"
	"github.com/manosay/manosay/backend/go-services/internal/sessions"
	"github.com/manosay/manosay/backend/go-services/internal/uploads"
	"github.com/manosay/manosay/backend/go-services/pkg/logger"
)

const (
	msgUnavailable  = "Service temporarily unavailable"
	msgInternal     = "internal error"
	msgSlugConflict = "Could not create post: slug conflict. Try a different title or slug."
)

// statusFor maps service errors to an HTTP status and a message that is
// safe to show. Driver and transport details never reach the client.
func statusFor(err error) (int, string) {
	var connErr *database.ConnectionError
	var deliveryErr *mailer.DeliveryError
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &connErr), errors.Is(err, database.ErrNotInitialized):
		return http.StatusServiceUnavailable, msgUnavailable
	case errors.Is(err, accounts.ErrEmailTaken):
		return http.StatusConflict, "Email already registered"
	case errors.Is(err, posts.ErrSlugConflict):
		return http.StatusConflict, msgSlugConflict
	case errors.Is(err, uploads.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, uploads.ErrTooLarge.Error()
	case errors.As(err, &deliveryErr):
		return http.StatusInternalServerError, "Error sending message"
	case errors.Is(err, accounts.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, credentials.ErrExpired), errors.Is(err, credentials.ErrInvalidToken), errors.Is(err, sessions.ErrRevoked):
		return http.StatusUnauthorized, "Invalid or expired token"
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error()
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// respondError writes the JSON error body for err. Server-side failures are
// logged with the full cause.
func respondError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": msg})
}

// respondBindError rejects a request body that failed binding or validation.
func respondBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
}
