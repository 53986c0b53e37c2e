package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/manosay/manosay/backend/go-services/internal/accounts"
	"github.com/manosay/manosay/backend/go-services/internal/credentials"
	"github.com/manosay/manosay/backend/go-services/internal/leads"
	"github.com/manosay/manosay/backend/go-services/internal/mailer"
	"github.com/manosay/manosay/backend/go-services/internal/models"
	"github.com/manosay/manosay/backend/go-services/pkg/logger"
)

// HealthChecker reports whether the document store answers.
type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}

// APIHandler serves the JSON endpoints under /api.
type APIHandler struct {
	accounts *accounts.Service
	leads    *leads.Service
	relay    mailer.Relay
	issuer   *credentials.TokenIssuer
	tokenTTL time.Duration
	store    HealthChecker
}

func NewAPIHandler(a *accounts.Service, l *leads.Service, relay mailer.Relay, issuer *credentials.TokenIssuer, tokenTTL time.Duration, store HealthChecker) *APIHandler {
	return &APIHandler{accounts: a, leads: l, relay: relay, issuer: issuer, tokenTTL: tokenTTL, store: store}
}

// Register mounts /api routes. limit guards the form and credential
// endpoints and may be nil.
func (h *APIHandler) Register(r *gin.Engine, limit gin.HandlerFunc) {
	api := r.Group("/api")
	api.POST("/contact", with(limit, h.Contact)...)
	api.GET("/request-quote", h.RequestQuotePage)
	api.POST("/request-quote", with(limit, h.RequestQuote)...)
	api.GET("/health", h.Health)
	api.POST("/register", with(limit, h.RegisterAccount)...)
	api.POST("/login", with(limit, h.Login)...)
}

type contactRequest struct {
	Name    string `json:"name" form:"name" binding:"required"`
	Email   string `json:"email" form:"email" binding:"required,email"`
	Subject string `json:"subject" form:"subject" binding:"required"`
	Message string `json:"message" form:"message" binding:"required"`
}

// Contact relays the message synchronously. Nothing is stored.
func (h *APIHandler) Contact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	msg := mailer.ContactMessage(req.Name, req.Email, req.Subject, req.Message)
	if err := mailer.Deliver(c.Request.Context(), h.relay, msg); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Thank you for your message! We will get back to you soon.",
	})
}

func (h *APIHandler) RequestQuotePage(c *gin.Context) {
	c.HTML(http.StatusOK, "request_quote.html", gin.H{
		"page_title":  "Request a Quote - Manosay",
		"active_page": "quote",
	})
}

type quoteRequest struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Company  string `json:"company" form:"company"`
	Platform string `json:"platform" form:"platform"`
	Budget   string `json:"budget" form:"budget"`
	Timeline string `json:"timeline" form:"timeline"`
	Message  string `json:"message" form:"message"`
}

// RequestQuote stores the lead and queues the notification. A failed or
// rejected notification does not fail the request.
func (h *APIHandler) RequestQuote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	lead, err := h.leads.Capture(c.Request.Context(), leads.Input{
		Name:     req.Name,
		Email:    req.Email,
		Company:  req.Company,
		Platform: req.Platform,
		Budget:   req.Budget,
		Timeline: req.Timeline,
		Message:  req.Message,
	}, leads.Client{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Lead received",
		"lead_id": lead.ID.Hex(),
	})
}

// Health reports the store connectivity. It always answers 200.
func (h *APIHandler) Health(c *gin.Context) {
	ok := h.store != nil && h.store.HealthCheck(c.Request.Context())
	status := "healthy"
	if !ok {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "service": "Manosay API", "db_connected": ok})
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// RegisterAccount creates a non-admin account.
func (h *APIHandler) RegisterAccount(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	acct, err := h.accounts.Register(c.Request.Context(), req.Name, req.Email, req.Password, models.RoleUser)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Infof("registered account %s", acct.ID.Hex())
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "User registered", "user_id": acct.ID.Hex()})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a bearer token.
func (h *APIHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	acct, err := h.accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := h.issuer.Issue(map[string]any{"sub": acct.Email, "id": acct.ID.Hex()}, h.tokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Login successful",
		"access_token": token,
		"token_type":   "bearer",
		"user":         gin.H{"id": acct.ID.Hex(), "name": acct.Name, "email": acct.Email},
	})
}
