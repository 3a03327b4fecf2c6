package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/capsule/retail-inventory/internal/api/cookie"
	"github.com/capsule/retail-inventory/internal/api/middleware"
	"github.com/capsule/retail-inventory/internal/core/domain"
	"github.com/capsule/retail-inventory/internal/core/ports"
	"github.com/capsule/retail-inventory/internal/core/service"
	"github.com/capsule/retail-inventory/internal/infrastructure/db/memory"
)

// fakeAuth accepts password "pw" for the known users and opens real sessions.
type fakeAuth struct {
	sessions ports.SessionManager
	users    map[string]domain.User
}

func (f *fakeAuth) Register(context.Context, string, string, string) (*domain.User, error) {
	return nil, domain.ErrValidation
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	u, ok := f.users[username]
	if !ok || password != "pw" {
		return "", nil, domain.ErrInvalidCredentials
	}
	token, err := f.sessions.Create(ctx, u)
	if err != nil {
		return "", nil, err
	}
	return token, &u, nil
}

func (f *fakeAuth) Logout(ctx context.Context, token string) error {
	return f.sessions.Destroy(ctx, token)
}

type emptyInventory struct{}

func (emptyInventory) Add(context.Context, domain.User, domain.InventoryItem) (int64, error) {
	return 1, nil
}
func (emptyInventory) Delete(context.Context, domain.User, int64) error { return nil }
func (emptyInventory) List(context.Context) ([]domain.InventoryItem, error) {
	return []domain.InventoryItem{}, nil
}
func (emptyInventory) Notifications(context.Context) (*domain.StockNotifications, error) {
	return &domain.StockNotifications{}, nil
}

type emptyAdmin struct{}

func (emptyAdmin) DashboardStats(context.Context) (*domain.DashboardStats, error) {
	return &domain.DashboardStats{}, nil
}
func (emptyAdmin) Users(context.Context) ([]domain.User, error) { return []domain.User{}, nil }
func (emptyAdmin) UserActivity(context.Context) ([]domain.ActivityRecord, error) {
	return []domain.ActivityRecord{}, nil
}
func (emptyAdmin) InventoryLogs(context.Context) ([]domain.InventoryLog, error) {
	return []domain.InventoryLog{}, nil
}

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	sessions := service.NewSessionManager(memory.NewSessionStore(), 30*time.Minute, zerolog.Nop())
	return NewRouter(Dependencies{
		Auth: &fakeAuth{sessions: sessions, users: map[string]domain.User{
			"alice": {ID: 1, Username: "alice", Role: domain.RoleUser},
			"root":  {ID: 2, Username: "root", Role: domain.RoleAdmin},
		}},
		Sessions:   sessions,
		Inventory:  emptyInventory{},
		Admin:      emptyAdmin{},
		Cookies:    cookie.NewCodec("retail.sid", "test-secret", 30*time.Minute, false),
		PublicDir:  t.TempDir(),
		Log:        zerolog.Nop(),
		Registerer: prometheus.NewRegistry(),
	})
}

func serve(e *echo.Echo, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo, username string) *http.Cookie {
	t.Helper()
	rec := serve(e, http.MethodPost, "/login", `{"username":"`+username+`","password":"pw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("login: expected a session cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func TestRouter_AnonymousIsRedirectedToLogin(t *testing.T) {
	e := newTestRouter(t)

	for _, path := range []string{"/dashboard", "/inventory-data", "/api/user-info", "/notifications-data"} {
		rec := serve(e, http.MethodGet, path, "")
		if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
			t.Fatalf("%s: expected 302 to /login, got %d %q", path, rec.Code, rec.Header().Get(echo.HeaderLocation))
		}
	}
}

func TestRouter_AdminRoutesRejectUsersWithPlainText(t *testing.T) {
	e := newTestRouter(t)
	ck := login(t, e, "alice")

	rec := serve(e, http.MethodGet, "/api/admin/users", "", ck)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if rec.Body.String() != middleware.AdminDenied {
		t.Fatalf("expected plain-text denial, got %q", rec.Body.String())
	}
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		t.Fatalf("admin denial must not be JSON")
	}

	admin := login(t, e, "root")
	if rec := serve(e, http.MethodGet, "/api/admin/users", "", admin); rec.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d", rec.Code)
	}
}

func TestRouter_LogoutInvalidatesCookie(t *testing.T) {
	e := newTestRouter(t)
	ck := login(t, e, "alice")

	if rec := serve(e, http.MethodGet, "/inventory-data", "", ck); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with session, got %d", rec.Code)
	}

	rec := serve(e, http.MethodPost, "/logout", "", ck)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", rec.Code)
	}

	// the old cookie is still validly signed but its session is gone
	if rec := serve(e, http.MethodGet, "/inventory-data", "", ck); rec.Code != http.StatusFound {
		t.Fatalf("expected redirect after logout, got %d", rec.Code)
	}
}

func TestRouter_LoginRedirectTargetsByRole(t *testing.T) {
	e := newTestRouter(t)

	tests := map[string]string{"alice": "/dashboard", "root": "/admin-dashboard"}
	for username, want := range tests {
		rec := serve(e, http.MethodPost, "/login", `{"username":"`+username+`","password":"pw"}`)
		var resp map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp["redirect"] != want {
			t.Fatalf("%s: expected redirect %s, got %v", username, want, resp["redirect"])
		}
	}

	rec := serve(e, http.MethodPost, "/login", `{"username":"alice","password":"wrong"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Invalid credentials") {
		t.Fatalf("bad credentials: got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_LegacyRedirects(t *testing.T) {
	e := newTestRouter(t)

	tests := map[string]string{
		"/login.html":  "/login",
		"/index.html":  "/index",
		"/index":       "/dashboard",
		"/trends.html": "/trends",
	}
	for from, to := range tests {
		rec := serve(e, http.MethodGet, from, "")
		if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != to {
			t.Fatalf("%s: expected 302 to %s, got %d %q", from, to, rec.Code, rec.Header().Get(echo.HeaderLocation))
		}
	}
}

func TestRouter_LoggedInUserSkipsLoginPage(t *testing.T) {
	e := newTestRouter(t)
	ck := login(t, e, "root")

	rec := serve(e, http.MethodGet, "/login", "", ck)
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/admin-dashboard" {
		t.Fatalf("expected redirect to /admin-dashboard, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestRouter_HealthIsPublic(t *testing.T) {
	e := newTestRouter(t)

	rec := serve(e, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"healthy"`) {
		t.Fatalf("unexpected health response: %d %s", rec.Code, rec.Body.String())
	}
}
