package routes

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"blogicum/app/config"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

// fakeClock is an adjustable time source, so tests can move "now"
// across a post's scheduled pub date.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testApp struct {
	router *mux.Router
	db     *badger.DB
	clock  *fakeClock
}

// setupTestTemplates writes a stripped-down template set into a temp
// dir so controllers can render without the real views.
func setupTestTemplates(t *testing.T) string {
	t.Helper()
	base := t.TempDir()

	files := map[string]string{
		"layout.html":                  `{{define "layout"}}<nav>{{if .User}}{{.User.Username}}{{end}}</nav>{{template "content" .}}{{end}}`,
		"posts/index.html":             `{{define "content"}}{{range .Page.Posts}}<h2>{{.Title}}</h2>{{end}}{{end}}`,
		"posts/category.html":          `{{define "content"}}<h1>{{.Category.Title}}</h1>{{range .Page.Posts}}<h2>{{.Title}}</h2>{{end}}{{end}}`,
		"posts/detail.html":            `{{define "content"}}<h1>{{.Post.Title}}</h1>{{range .Post.Comments}}<p>{{.Text}}</p>{{end}}{{end}}`,
		"posts/form.html":              `{{define "content"}}post form{{range .Errors}}<p>{{.}}</p>{{end}}{{end}}`,
		"posts/confirm_delete.html":    `{{define "content"}}delete {{.Post.Title}}{{end}}`,
		"comments/form.html":           `{{define "content"}}comment form{{range .Errors}}<p>{{.}}</p>{{end}}{{end}}`,
		"users/registration_form.html": `{{define "content"}}<h1>{{.Title}}</h1>{{range .Errors}}<p>{{.}}</p>{{end}}{{end}}`,
		"users/login.html":             `{{define "content"}}login{{range .Errors}}<p>{{.}}</p>{{end}}{{end}}`,
		"users/profile.html":           `{{define "content"}}<h1>{{.Profile.Username}}</h1>{{range .Page.Posts}}<h2>{{.Title}}</h2>{{end}}{{end}}`,
		"pages/about.html":             `{{define "content"}}about{{end}}`,
		"pages/rules.html":             `{{define "content"}}rules{{end}}`,
	}
	for name, content := range files {
		path := filepath.Join(base, "app/views", name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return base
}

// setupTestApp builds a full application over an in-memory database,
// fixture templates and a pinned clock.
func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	base := setupTestTemplates(t)
	cfg := &config.Config{
		BasePath:   base,
		MediaDir:   filepath.Join(base, "media"),
		PageSize:   10,
		SessionTTL: time.Hour,
	}
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}

	return &testApp{
		router: SetupWithClock(db, cfg, clock.Now),
		db:     db,
		clock:  clock,
	}
}

// get performs a GET request, optionally with a session cookie.
func (app *testApp) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	return rec
}

// postForm performs a form POST, optionally with a session cookie.
func (app *testApp) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	return rec
}

// signup registers a user and logs them in, returning the session
// cookie.
func (app *testApp) signup(t *testing.T, username string) *http.Cookie {
	t.Helper()

	rec := app.postForm("/registration/", url.Values{
		"username":  {username},
		"email":     {username + "@example.com"},
		"password1": {"secret-pass"},
		"password2": {"secret-pass"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login/", rec.Header().Get("Location"))

	rec = app.postForm("/login/", url.Values{
		"username": {username},
		"password": {"secret-pass"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "session_id" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

// createPost submits the post form as the given user and returns the
// response.
func (app *testApp) createPost(t *testing.T, cookie *http.Cookie, title, pubDate string, published bool) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{
		"title": {title},
		"text":  {"some text"},
	}
	if pubDate != "" {
		form.Set("pub_date", pubDate)
	}
	if published {
		form.Set("is_published", "on")
	}
	return app.postForm("/posts/create/", form, cookie)
}
