package http_test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/estate/internal/estate/catalog"
	estatehttp "github.com/aussiebroadwan/estate/internal/estate/http"
	"github.com/aussiebroadwan/estate/internal/estate/service"
	"github.com/aussiebroadwan/estate/internal/estate/session"
	"github.com/aussiebroadwan/estate/internal/estate/store/drivers/sqlite"
	"github.com/aussiebroadwan/estate/internal/estate/view"
	"github.com/aussiebroadwan/estate/pkg/cryptox"
	"github.com/aussiebroadwan/estate/pkg/httpx"
	"github.com/aussiebroadwan/estate/pkg/slogx"
	"github.com/stretchr/testify/require"
)

type testSite struct {
	URL     string
	Catalog *catalog.Catalog
	client  *http.Client
}

// newTestSite starts the full router over a temp sqlite database. Rate limits
// are relaxed unless strictLimits is set.
func newTestSite(t *testing.T, strictLimits bool) *testSite {
	t.Helper()

	if !strictLimits {
		relaxed := httpx.RateLimitConfig{RequestsPerWindow: 10_000, Window: time.Minute, Burst: 10_000}
		saved := []httpx.RateLimitConfig{httpx.StrictLimit, httpx.ModerateLimit, httpx.PublicLimit}
		httpx.StrictLimit, httpx.ModerateLimit, httpx.PublicLimit = relaxed, relaxed, relaxed
		t.Cleanup(func() {
			httpx.StrictLimit, httpx.ModerateLimit, httpx.PublicLimit = saved[0], saved[1], saved[2]
		})
	}

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "estate.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	views, err := view.NewTemplates()
	require.NoError(t, err)

	sessions, err := session.NewManager(session.NewMemoryStore(), session.Config{
		Secret: []byte(strings.Repeat("k", 32)),
		TTL:    time.Hour,
	})
	require.NoError(t, err)

	hasher := &cryptox.PasswordHasher{
		Params: cryptox.Params{Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 16, SaltLength: 8},
	}

	logger := slogx.Discard()
	router := estatehttp.NewRouter("test", st, views, sessions, logger)
	router.Catalog = catalog.Default()
	router.AuthService = service.NewAuthService(st, hasher)
	router.ContactService = &service.ContactService{Logger: logger}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testSite{URL: srv.URL, Catalog: router.Catalog, client: newBrowser(t)}
}

// newBrowser returns a client that keeps cookies and does not follow redirects.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

type result struct {
	Code     int
	Location string
	Body     string
	Header   http.Header
}

func (s *testSite) get(t *testing.T, path string) result {
	t.Helper()
	resp, err := s.client.Get(s.URL + path)
	require.NoError(t, err)
	return readResult(t, resp)
}

func (s *testSite) post(t *testing.T, path string, form url.Values) result {
	t.Helper()
	resp, err := s.client.PostForm(s.URL+path, form)
	require.NoError(t, err)
	return readResult(t, resp)
}

// follow asserts a redirect to location and returns the page it leads to.
func (s *testSite) follow(t *testing.T, res result, code int, location string) result {
	t.Helper()
	require.Equal(t, code, res.Code, res.Body)
	require.Equal(t, location, res.Location)

	path, _, _ := strings.Cut(location, "#")
	return s.get(t, path)
}

func (s *testSite) register(t *testing.T, username, email, password string) result {
	t.Helper()
	return s.post(t, "/register", url.Values{"username": {username}, "email": {email}, "password": {password}})
}

func (s *testSite) login(t *testing.T, email, password string) result {
	t.Helper()
	return s.post(t, "/login", url.Values{"email": {email}, "password": {password}})
}

func readResult(t *testing.T, resp *http.Response) result {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return result{
		Code:     resp.StatusCode,
		Location: resp.Header.Get("Location"),
		Body:     string(body),
		Header:   resp.Header,
	}
}
