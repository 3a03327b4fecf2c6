package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/capsule/retail-inventory/internal/core/domain"
)

func TestRBAC_Allows(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	WithUser(c, &domain.User{ID: 1, Role: domain.RoleAdmin})

	called := false
	handler := Admin()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_Forbids(t *testing.T) {
	tests := map[string]*domain.User{
		"regular user": {ID: 2, Role: domain.RoleUser},
		"anonymous":    nil,
	}
	for name, user := range tests {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if user != nil {
				WithUser(c, user)
			}

			handler := Admin()(func(c echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})

			if err := handler(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", rec.Code)
			}
			if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, echo.MIMETextPlain) {
				t.Fatalf("expected plain text, got %q", ct)
			}
			if rec.Body.String() != AdminDenied {
				t.Fatalf("unexpected body %q", rec.Body.String())
			}
		})
	}
}
