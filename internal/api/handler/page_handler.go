package handler

import (
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/capsule/retail-inventory/internal/api/middleware"
)

// LegacyRedirects maps old .html bookmarks to their canonical paths.
var LegacyRedirects = map[string]string{
	"/register.html":      "/register",
	"/login.html":         "/login",
	"/index.html":         "/index",
	"/inventory.html":     "/inventory",
	"/chatbot.html":       "/chatbot",
	"/trends.html":        "/trends",
	"/notifications.html": "/notifications",
	"/contact.html":       "/contact",
}

// PageHandler serves the static HTML pages under <dir>/html.
type PageHandler struct {
	dir string
}

func NewPageHandler(publicDir string) *PageHandler {
	return &PageHandler{dir: publicDir}
}

// Page serves <name>.html.
func (h *PageHandler) Page(name string) echo.HandlerFunc {
	path := h.path(name)
	return func(c echo.Context) error {
		return c.File(path)
	}
}

// GuestPage serves <name>.html to anonymous visitors and sends logged-in
// users to their role's home page.
func (h *PageHandler) GuestPage(name string) echo.HandlerFunc {
	path := h.path(name)
	return func(c echo.Context) error {
		if u := middleware.CurrentUser(c); u != nil {
			return c.Redirect(http.StatusFound, u.HomePath())
		}
		return c.File(path)
	}
}

// Redirect answers with a 302 to target.
func Redirect(target string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Redirect(http.StatusFound, target)
	}
}

func (h *PageHandler) path(name string) string {
	return filepath.Join(h.dir, "html", name+".html")
}
