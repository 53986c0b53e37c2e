package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/manosay/manosay/backend/go-services/internal/accounts"
	"github.com/manosay/manosay/backend/go-services/internal/credentials"
	"github.com/manosay/manosay/backend/go-services/internal/leads"
	"github.com/manosay/manosay/backend/go-services/internal/mailer"
	"github.com/manosay/manosay/backend/go-services/internal/models"
	"github.com/manosay/manosay/backend/go-services/internal/posts"
	"github.com/manosay/manosay/backend/go-services/internal/sessions"
	"github.com/manosay/manosay/backend/go-services/internal/uploads"
	"github.com/manosay/manosay/backend/go-services/web"
)

func init() { gin.SetMode(gin.TestMode) }

// fakeRelay records sent messages and fails when err is set.
type fakeRelay struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (f *fakeRelay) Send(ctx context.Context, m mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return &mailer.DeliveryError{Cause: f.err}
	}
	f.sent = append(f.sent, m)
	return nil
}

func (f *fakeRelay) Sent() []mailer.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mailer.Message(nil), f.sent...)
}

type fakeHealth bool

func (f fakeHealth) HealthCheck(ctx context.Context) bool { return bool(f) }

type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (m *memStorage) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = map[string][]byte{}
	}
	m.files[key] = b
	return "/static/uploads/" + key, nil
}

type fixture struct {
	router    *gin.Engine
	accounts  *accounts.Service
	postsRepo *posts.MemoryRepository
	posts     *posts.Service
	leadsRepo *leads.MemoryRepository
	relay     *fakeRelay
	queue     *mailer.Queue
	sessions  *sessions.Manager
	issuer    *credentials.TokenIssuer
	storage   *memStorage
	admin     *models.Account
	user      *models.Account
}

const testPassword = "correct-horse"

func newFixture(t *testing.T, healthy bool) *fixture {
	t.Helper()
	hasher := credentials.NewHasher(bcrypt.MinCost, 0)
	acctSvc := accounts.NewService(accounts.NewMemoryRepository(), hasher)
	admin, err := acctSvc.Register(context.Background(), "Admin", "admin@manosay.com", testPassword, models.RoleAdmin)
	require.NoError(t, err)
	user, err := acctSvc.Register(context.Background(), "User", "user@manosay.com", testPassword, models.RoleUser)
	require.NoError(t, err)

	issuer := credentials.NewTokenIssuer("handler-test-secret", nil)
	mgr := sessions.NewManager(issuer, nil, 24*time.Hour)

	relay := &fakeRelay{}
	queue := mailer.NewQueue(relay, 8, 1, nil)
	t.Cleanup(func() { _ = queue.Close(context.Background()) })

	postsRepo := posts.NewMemoryRepository()
	postSvc := posts.NewService(postsRepo)
	leadsRepo := &leads.MemoryRepository{}
	store := &memStorage{}

	r := gin.New()
	r.SetHTMLTemplate(web.MustTemplates())
	NewSiteHandler(postSvc).Register(r)
	NewAdminHandler(acctSvc, postSvc, uploads.NewService(store, 0), mgr, false).Register(r, nil)
	NewAPIHandler(acctSvc, leads.NewService(leadsRepo, queue), relay, issuer, time.Hour, fakeHealth(healthy)).Register(r, nil)

	return &fixture{
		router:    r,
		accounts:  acctSvc,
		postsRepo: postsRepo,
		posts:     postSvc,
		leadsRepo: leadsRepo,
		relay:     relay,
		queue:     queue,
		sessions:  mgr,
		issuer:    issuer,
		storage:   store,
		admin:     admin,
		user:      user,
	}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) adminCookie(t *testing.T) *http.Cookie {
	t.Helper()
	token, err := f.sessions.Issue(f.admin)
	require.NoError(t, err)
	return &http.Cookie{Name: sessions.CookieName, Value: token}
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

var errRelayDown = errors.New("dial tcp: connection refused")
