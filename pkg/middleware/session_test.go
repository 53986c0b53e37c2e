package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manosay/manosay/backend/go-services/internal/accounts"
	"github.com/manosay/manosay/backend/go-services/internal/credentials"
	"github.com/manosay/manosay/backend/go-services/internal/models"
	"github.com/manosay/manosay/backend/go-services/internal/sessions"
)

type guardFixture struct {
	mgr   *sessions.Manager
	repo  *accounts.MemoryRepository
	guard *AdminGuard
	admin *models.Account
	user  *models.Account
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()
	repo := accounts.NewMemoryRepository()
	admin := &models.Account{Email: "admin@manosay.com", Name: "Admin", Role: models.RoleAdmin}
	user := &models.Account{Email: "user@manosay.com", Name: "User", Role: models.RoleUser}
	require.NoError(t, repo.Insert(context.Background(), admin))
	require.NoError(t, repo.Insert(context.Background(), user))

	mgr := sessions.NewManager(credentials.NewTokenIssuer("test-secret", nil), nil, time.Hour)
	return &guardFixture{
		mgr:   mgr,
		repo:  repo,
		guard: NewAdminGuard(mgr, accounts.NewService(repo, nil)),
		admin: admin,
		user:  user,
	}
}

func (f *guardFixture) router() *gin.Engine {
	r := gin.New()
	r.GET("/admin/dashboard", f.guard.Require(RedirectTo("/admin/login")), func(c *gin.Context) {
		c.String(http.StatusOK, "hello "+AccountFrom(c).Name+" "+SessionFrom(c).Email)
	})
	r.POST("/admin/upload-image", f.guard.Require(Unauthorized), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func withCookie(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: sessions.CookieName, Value: token})
	return req
}

func TestAdminGuard_AllowsAdmin(t *testing.T) {
	f := newGuardFixture(t)
	token, err := f.mgr.Issue(f.admin)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	f.router().ServeHTTP(w, withCookie(httptest.NewRequest("GET", "/admin/dashboard", nil), token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello Admin admin@manosay.com", w.Body.String())
}

func TestAdminGuard_RedirectsWithoutSession(t *testing.T) {
	f := newGuardFixture(t)
	w := httptest.NewRecorder()
	f.router().ServeHTTP(w, httptest.NewRequest("GET", "/admin/dashboard", nil))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
}

func TestAdminGuard_RejectsNonAdmin(t *testing.T) {
	f := newGuardFixture(t)
	token, err := f.mgr.Issue(f.user)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	f.router().ServeHTTP(w, withCookie(httptest.NewRequest("POST", "/admin/upload-image", nil), token))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminGuard_RejectsForgedToken(t *testing.T) {
	f := newGuardFixture(t)
	other := sessions.NewManager(credentials.NewTokenIssuer("other-secret", nil), nil, time.Hour)
	token, err := other.Issue(f.admin)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	f.router().ServeHTTP(w, withCookie(httptest.NewRequest("POST", "/admin/upload-image", nil), token))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w2 := httptest.NewRecorder()
	f.router().ServeHTTP(w2, withCookie(httptest.NewRequest("POST", "/admin/upload-image", nil), "garbage"))
	require.Equal(t, http.StatusUnauthorized, w2.Code)
}

func TestAdminGuard_RejectsDeletedAccount(t *testing.T) {
	f := newGuardFixture(t)
	ghost := &models.Account{Email: "ghost@manosay.com", Name: "Ghost", Role: models.RoleAdmin}
	ghost.ID = [12]byte{1, 2, 3}
	token, err := f.mgr.Issue(ghost)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	f.router().ServeHTTP(w, withCookie(httptest.NewRequest("GET", "/admin/dashboard", nil), token))
	require.Equal(t, http.StatusFound, w.Code)
}

type failingLookup struct{}

func (failingLookup) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return nil, errors.New("store down")
}

func TestAdminGuard_CurrentReportsStoreErrors(t *testing.T) {
	f := newGuardFixture(t)
	token, err := f.mgr.Issue(f.admin)
	require.NoError(t, err)
	g := NewAdminGuard(f.mgr, failingLookup{})

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = withCookie(httptest.NewRequest("GET", "/admin/dashboard", nil), token)
	a, s, err := g.Current(c)
	assert.Error(t, err)
	assert.Nil(t, a)
	assert.Nil(t, s)
}
