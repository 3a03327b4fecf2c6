package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/capsule/retail-inventory/docs"
	"github.com/capsule/retail-inventory/internal/api/handler"
	"github.com/capsule/retail-inventory/internal/api/middleware"
	"github.com/capsule/retail-inventory/internal/core/ports"
)

// CookieCodec reads and writes the signed session cookie.
type CookieCodec interface {
	middleware.TokenReader
	handler.SessionCookie
}

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Auth      ports.AuthService
	Sessions  ports.SessionManager
	Inventory ports.InventoryService
	Chatbot   ports.ChatbotService
	Admin     ports.AdminService
	Support   ports.SupportService

	Cookies   CookieCodec
	Checks    map[string]handler.Check
	PublicDir string
	Log       zerolog.Logger

	// Registerer receives the HTTP request metrics. Nil means the default
	// Prometheus registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 "retail",
		Registerer:                d.Registerer,
		DoNotUseRequestPathFor404: true,
	}))
	e.Use(middleware.Session(d.Cookies, d.Sessions, d.Log))

	authed := middleware.Auth()
	admin := middleware.Admin()

	// --- Handlers ---
	pages := handler.NewPageHandler(d.PublicDir)
	authHandler := handler.NewAuthHandler(d.Auth, d.Cookies, d.Log)
	inventoryHandler := handler.NewInventoryHandler(d.Inventory, d.Log)
	chatbotHandler := handler.NewChatbotHandler(d.Chatbot, d.Log)
	adminHandler := handler.NewAdminHandler(d.Admin, d.Log)
	supportHandler := handler.NewSupportHandler(d.Support, d.Log)

	// --- Pages ---
	// Static serves the /* catch-all; explicit routes below take precedence.
	e.Static("/", d.PublicDir)
	e.GET("/", pages.GuestPage("index"))
	e.GET("/login", pages.GuestPage("login"))
	e.GET("/register", pages.GuestPage("register"))
	e.GET("/contact", pages.Page("contact"))
	for _, name := range []string{"dashboard", "inventory", "chatbot", "trends", "notifications"} {
		e.GET("/"+name, pages.Page(name), authed)
	}
	e.GET("/admin-dashboard", pages.Page("admin-dashboard"), admin)
	e.GET("/admin-users", pages.Page("admin-users"), admin)
	e.GET("/index", handler.Redirect("/dashboard"))
	for from, to := range handler.LegacyRedirects {
		e.GET(from, handler.Redirect(to))
	}

	// --- Auth ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)
	e.GET("/api/user-info", authHandler.UserInfo, authed)

	// --- Inventory ---
	e.POST("/inventory", inventoryHandler.Add, authed)
	e.GET("/inventory-data", inventoryHandler.List, authed)
	e.DELETE("/inventory/:id", inventoryHandler.Delete, authed)
	e.GET("/notifications-data", inventoryHandler.Notifications, authed)
	e.POST("/chatbot", chatbotHandler.Reply, authed)

	// --- Support ---
	e.POST("/contact-support", supportHandler.ContactSupport)

	// --- Admin API ---
	adminAPI := e.Group("/api/admin", admin)
	adminAPI.GET("/dashboard-stats", adminHandler.DashboardStats)
	adminAPI.GET("/users", adminHandler.Users)
	adminAPI.GET("/user-activity", adminHandler.UserActivity)
	adminAPI.GET("/inventory-logs", adminHandler.InventoryLogs)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks)
	e.GET("/api/health", healthHandler.Liveness)
	e.GET("/api/health/ready", healthDepsHandler.Readiness)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				ev = log.Error().Err(v.Error)
			case v.Error != nil:
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
