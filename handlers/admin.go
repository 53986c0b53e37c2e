package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manosay/manosay/backend/go-services/internal/accounts"
	"github.com/manosay/manosay/backend/go-services/internal/models"
	"github.com/manosay/manosay/backend/go-services/internal/posts"
	"github.com/manosay/manosay/backend/go-services/internal/sessions"
	"github.com/manosay/manosay/backend/go-services/internal/uploads"
	"github.com/manosay/manosay/backend/go-services/pkg/logger"
	"github.com/manosay/manosay/backend/go-services/pkg/middleware"
)

const (
	loginPath     = "/admin/login"
	dashboardPath = "/admin/dashboard"
)

// AdminHandler serves the cookie-authenticated content management pages.
type AdminHandler struct {
	accounts     *accounts.Service
	posts        *posts.Service
	uploads      *uploads.Service
	sessions     *sessions.Manager
	guard        *middleware.AdminGuard
	secureCookie bool
}

func NewAdminHandler(a *accounts.Service, p *posts.Service, u *uploads.Service, s *sessions.Manager, secureCookie bool) *AdminHandler {
	return &AdminHandler{
		accounts:     a,
		posts:        p,
		uploads:      u,
		sessions:     s,
		guard:        middleware.NewAdminGuard(s, a),
		secureCookie: secureCookie,
	}
}

// Register mounts the admin routes. limit guards the credential and write
// endpoints and may be nil.
func (h *AdminHandler) Register(r *gin.Engine, limit gin.HandlerFunc) {
	a := r.Group("/admin")
	a.GET("/login", h.LoginPage)
	a.POST("/login", with(limit, h.Login)...)
	a.GET("/logout", h.Logout)

	pages := a.Group("", h.guard.Require(middleware.RedirectTo(loginPath)))
	pages.GET("/dashboard", h.Dashboard)
	pages.POST("/create-post", with(limit, h.CreatePost)...)

	a.POST("/upload-image", with(limit, h.guard.Require(middleware.Unauthorized), h.UploadImage)...)
}

// LoginPage renders the login form, or skips it for a signed-in admin.
func (h *AdminHandler) LoginPage(c *gin.Context) {
	if admin, _, err := h.guard.Current(c); err == nil && admin != nil {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}
	c.HTML(http.StatusOK, "admin_login.html", gin.H{"page_title": "Admin Login - Manosay"})
}

type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (h *AdminHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.loginError(c, http.StatusBadRequest, "Email and password are required")
		return
	}
	acct, err := h.accounts.Authenticate(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		status, msg := statusFor(err)
		if status >= http.StatusInternalServerError {
			logger.Errorf("admin login: %v", err)
		}
		h.loginError(c, status, msg)
		return
	}
	if !acct.IsAdmin() {
		h.loginError(c, http.StatusForbidden, "Not authorized")
		return
	}
	token, err := h.sessions.Issue(acct)
	if err != nil {
		logger.Errorf("admin login: issue session: %v", err)
		h.loginError(c, http.StatusInternalServerError, msgInternal)
		return
	}
	h.setSessionCookie(c, token, int(h.sessions.TTL().Seconds()))
	logger.Infof("admin %s signed in", acct.Email)
	c.Redirect(http.StatusFound, dashboardPath)
}

func (h *AdminHandler) loginError(c *gin.Context, status int, msg string) {
	c.HTML(status, "admin_login.html", gin.H{"page_title": "Admin Login - Manosay", "error": msg})
}

// Logout revokes the session token and clears the cookie.
func (h *AdminHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(sessions.CookieName); err == nil && token != "" {
		if err := h.sessions.Revoke(c.Request.Context(), token); err != nil {
			logger.Warnf("logout: %v", err)
		}
	}
	h.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusFound, "/")
}

func (h *AdminHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessions.CookieName, value, maxAge, "/", "", h.secureCookie, true)
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	h.renderDashboard(c, http.StatusOK, "")
}

func (h *AdminHandler) renderDashboard(c *gin.Context, status int, errMsg string) {
	admin := middleware.AccountFrom(c)
	list, err := h.posts.ListByAuthor(c.Request.Context(), admin.ID)
	if err != nil {
		logger.Warnf("dashboard: posts unavailable: %v", err)
		list = []*models.Post{}
		if errMsg == "" {
			_, errMsg = statusFor(err)
		}
	}
	data := gin.H{
		"page_title": "Dashboard - Manosay",
		"user":       gin.H{"email": admin.Email, "name": admin.Name},
		"posts":      list,
	}
	if errMsg != "" {
		data["error"] = errMsg
	}
	c.HTML(status, "admin_dashboard.html", data)
}

type createPostForm struct {
	Title   string `form:"title" binding:"required"`
	Content string `form:"content" binding:"required"`
	Slug    string `form:"slug"`
	Image   string `form:"image"`
	Tags    string `form:"tags"`
	Format  string `form:"format"`
	Status  string `form:"status"`
}

// CreatePost stores a post and returns to the dashboard. Failures re-render
// the dashboard with a message.
func (h *AdminHandler) CreatePost(c *gin.Context) {
	var form createPostForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderDashboard(c, http.StatusBadRequest, "Title and content are required")
		return
	}
	admin := middleware.AccountFrom(c)
	_, err := h.posts.Create(c.Request.Context(), posts.CreateInput{
		Title:   form.Title,
		Content: form.Content,
		Slug:    form.Slug,
		Image:   form.Image,
		Tags:    form.Tags,
		Format:  form.Format,
		Status:  form.Status,
	}, admin)
	if err != nil {
		status, msg := statusFor(err)
		if status >= http.StatusInternalServerError {
			logger.Errorf("create post: %v", err)
			if status == http.StatusInternalServerError {
				msg = "Could not save post. Please try again later."
			}
		}
		h.renderDashboard(c, status, msg)
		return
	}
	c.Redirect(http.StatusFound, dashboardPath)
}

// UploadImage accepts a multipart "file" and returns its public URL.
func (h *AdminHandler) UploadImage(c *gin.Context) {
	// room for the multipart envelope around the file
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.uploads.MaxBytes()+1<<20)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			respondError(c, uploads.ErrTooLarge)
			return
		}
		respondError(c, models.Invalid("file", "no file uploaded"))
		return
	}
	url, err := h.uploads.SaveImage(c.Request.Context(), fh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// with prepends an optional middleware to a handler chain.
func with(mw gin.HandlerFunc, hs ...gin.HandlerFunc) []gin.HandlerFunc {
	if mw == nil {
		return hs
	}
	return append([]gin.HandlerFunc{mw}, hs...)
}
