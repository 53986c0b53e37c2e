package handlers

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manosay/manosay/backend/go-services/internal/models"
	"github.com/manosay/manosay/backend/go-services/internal/sessions"
)

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == sessions.CookieName {
			return c
		}
	}
	return nil
}

func TestAdminLoginPage(t *testing.T) {
	f := newFixture(t, true)
	w := f.do(httptest.NewRequest("GET", "/admin/login", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Admin Login")

	req := httptest.NewRequest("GET", "/admin/login", nil)
	req.AddCookie(f.adminCookie(t))
	w2 := f.do(req)
	require.Equal(t, http.StatusFound, w2.Code)
	assert.Equal(t, "/admin/dashboard", w2.Header().Get("Location"))
}

func TestAdminLogin_Success(t *testing.T) {
	f := newFixture(t, true)
	w := f.do(formRequest("POST", "/admin/login", "email=ADMIN%40manosay.com&password="+testPassword))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))

	c := sessionCookie(w.Result())
	require.NotNil(t, c)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 86400, c.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	s, err := f.sessions.Validate(context.Background(), c.Value)
	require.NoError(t, err)
	assert.Equal(t, f.admin.ID.Hex(), s.AccountID)
}

func TestAdminLogin_Rejections(t *testing.T) {
	f := newFixture(t, true)

	w := f.do(formRequest("POST", "/admin/login", "email=admin%40manosay.com&password=wrong-password"))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
	assert.Nil(t, sessionCookie(w.Result()))

	w2 := f.do(formRequest("POST", "/admin/login", "email=nobody%40manosay.com&password=whatever"))
	require.Equal(t, http.StatusUnauthorized, w2.Code)
	assert.Contains(t, w2.Body.String(), "Invalid email or password")

	w3 := f.do(formRequest("POST", "/admin/login", "email=user%40manosay.com&password="+testPassword))
	require.Equal(t, http.StatusForbidden, w3.Code)
	assert.Contains(t, w3.Body.String(), "Not authorized")
	assert.Nil(t, sessionCookie(w3.Result()))
}

func TestAdminDashboard(t *testing.T) {
	f := newFixture(t, true)
	w := f.do(httptest.NewRequest("GET", "/admin/dashboard", nil))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	req := httptest.NewRequest("GET", "/admin/dashboard", nil)
	req.AddCookie(f.adminCookie(t))
	w2 := f.do(req)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "Signed in as Admin (admin@manosay.com)")
}

func TestAdminLogout(t *testing.T) {
	f := newFixture(t, true)
	cookie := f.adminCookie(t)
	req := httptest.NewRequest("GET", "/admin/logout", nil)
	req.AddCookie(cookie)
	w := f.do(req)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cleared := sessionCookie(w.Result())
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.MaxAge < 0)
}

func TestCreatePost_SlugSuffixes(t *testing.T) {
	f := newFixture(t, true)
	for i := 0; i < 3; i++ {
		req := formRequest("POST", "/admin/create-post", "title=Hello+World&content=Body+text&tags=go,+web")
		req.AddCookie(f.adminCookie(t))
		w := f.do(req)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
	}
	assert.ElementsMatch(t, []string{"hello-world", "hello-world-1", "hello-world-2"}, f.postsRepo.Slugs())

	list, err := f.posts.ListByAuthor(context.Background(), f.admin.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Admin", list[0].Author)
	assert.Equal(t, []string{"go", "web"}, list[0].Tags)
}

func TestCreatePost_SlugConflict(t *testing.T) {
	f := newFixture(t, true)
	for n := 0; n <= 10; n++ {
		slug := "taken"
		if n > 0 {
			slug = fmt.Sprintf("taken-%d", n)
		}
		require.NoError(t, f.postsRepo.Insert(context.Background(), &models.Post{Title: "t", Slug: slug, Status: models.PostStatusPublished}))
	}
	req := formRequest("POST", "/admin/create-post", "title=Taken&content=Body")
	req.AddCookie(f.adminCookie(t))
	w := f.do(req)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "slug conflict")
	assert.Len(t, f.postsRepo.Slugs(), 11)
}

func TestCreatePost_RequiresAdminAndInput(t *testing.T) {
	f := newFixture(t, true)
	w := f.do(formRequest("POST", "/admin/create-post", "title=x&content=y"))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	req := formRequest("POST", "/admin/create-post", "content=only+content")
	req.AddCookie(f.adminCookie(t))
	w2 := f.do(req)
	require.Equal(t, http.StatusBadRequest, w2.Code)
	assert.Empty(t, f.postsRepo.Slugs())
}

var tinyPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89,
}

func uploadRequest(t *testing.T, contentType string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="cover.png"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/admin/upload-image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadImage(t *testing.T) {
	f := newFixture(t, true)
	req := uploadRequest(t, "image/png", tinyPNG)
	req.AddCookie(f.adminCookie(t))
	w := f.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	url, _ := decode(t, w.Body.Bytes())["url"].(string)
	assert.Regexp(t, `^/static/uploads/[0-9a-f]{32}\.png$`, url)
	assert.Len(t, f.storage.files, 1)
}

func TestUploadImage_Rejections(t *testing.T) {
	f := newFixture(t, true)

	w := f.do(uploadRequest(t, "image/png", tinyPNG))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	bad := uploadRequest(t, "text/html", []byte("<html></html>"))
	bad.AddCookie(f.adminCookie(t))
	w2 := f.do(bad)
	require.Equal(t, http.StatusBadRequest, w2.Code)

	none := formRequest("POST", "/admin/upload-image", "nothing=here")
	none.AddCookie(f.adminCookie(t))
	w3 := f.do(none)
	require.Equal(t, http.StatusBadRequest, w3.Code)
	assert.Empty(t, f.storage.files)
}
