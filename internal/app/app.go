// Package app assembles the retail inventory server from its configuration.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/capsule/retail-inventory/internal/api"
	"github.com/capsule/retail-inventory/internal/api/cookie"
	"github.com/capsule/retail-inventory/internal/api/handler"
	"github.com/capsule/retail-inventory/internal/core/ports"
	"github.com/capsule/retail-inventory/internal/core/service"
	"github.com/capsule/retail-inventory/internal/infrastructure/config"
	"github.com/capsule/retail-inventory/internal/infrastructure/db/memory"
	"github.com/capsule/retail-inventory/internal/infrastructure/db/postgres"
	"github.com/capsule/retail-inventory/internal/infrastructure/db/redis"
	"github.com/capsule/retail-inventory/internal/infrastructure/mail"
	"github.com/capsule/retail-inventory/internal/infrastructure/queue"
	"github.com/capsule/retail-inventory/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
	mailTimeout     = 15 * time.Second
)

// httpServer is the part of *echo.Echo that Run drives.
type httpServer interface {
	Start(address string) error
	Shutdown(ctx context.Context) error
}

type App struct {
	cfg        *config.Config
	log        zerolog.Logger
	db         *sql.DB
	rdb        *goredis.Client
	sessions   *memory.SessionStore
	dispatcher *queue.Dispatcher
	server     httpServer
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "retail-inventory",
		Env:     cfg.Env,
	})
	log := logger.For("app")

	a := &App{cfg: cfg, log: log}

	db, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Database.URL})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	a.db = db
	if cfg.Database.AutoSchema {
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			a.close()
			return nil, err
		}
	}

	var store ports.SessionStore
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			a.close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.rdb = rdb
		store = redis.NewSessionStore(rdb)
	} else {
		a.sessions = memory.NewSessionStore()
		store = a.sessions
		log.Warn().Msg("REDIS_ADDR not set, sessions are kept in memory")
	}

	users := postgres.NewUserRepository(db)
	items := postgres.NewInventoryRepository(db)
	activityRepo := postgres.NewActivityRepository(db)
	stats := postgres.NewStatsRepository(db)

	var recorder ports.ActivityRecorder = service.NewActivityLogger(activityRepo, logger.For("activity"))
	if cfg.Activity.Workers > 0 {
		a.dispatcher = queue.NewDispatcher(cfg.Activity.Workers, recorder, logger.For("activity_dispatcher"))
		recorder = a.dispatcher
	}

	thresholds := service.StockThresholds{Low: cfg.Stock.Low, High: cfg.Stock.High}
	sessionManager := service.NewSessionManager(store, cfg.SessionTTL(), logger.For("sessions"))
	authService := service.NewAuthService(users, sessionManager, recorder, logger.For("auth"))

	var mailer ports.Mailer
	if cfg.Email.User != "" {
		m, err := mail.NewSMTPMailer(mail.Config{
			Service:  cfg.Email.Service,
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.User,
			Password: cfg.Email.Password,
			Timeout:  mailTimeout,
		}, logger.For("mailer"))
		if err != nil {
			a.close()
			return nil, fmt.Errorf("configure mailer: %w", err)
		}
		mailer = m
	} else {
		log.Warn().Msg("EMAIL_USER not set, contact support is disabled")
	}

	if cfg.Admin.Username != "" && cfg.Admin.Password != "" {
		created, err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("bootstrap admin: %w", err)
		}
		if created {
			log.Info().Str("username", cfg.Admin.Username).Msg("bootstrap admin created")
		}
	}

	secret, fallback := cfg.SessionSecret()
	if fallback {
		if cfg.IsProduction() {
			a.close()
			return nil, errors.New("SESSION_SECRET is required in production")
		}
		log.Warn().Msg("SESSION_SECRET not set, using the development secret")
	}
	cookies := cookie.NewCodec(cfg.Session.CookieName, secret, cfg.SessionTTL(), cfg.Session.SecureCookies)

	checks := map[string]handler.Check{"postgres": db.PingContext}
	if a.rdb != nil {
		checks["redis"] = redis.Ping(a.rdb)
	}

	a.server = api.NewRouter(api.Dependencies{
		Auth:      authService,
		Sessions:  sessionManager,
		Inventory: service.NewInventoryService(items, recorder, thresholds, logger.For("inventory")),
		Chatbot:   service.NewChatbotService(items, thresholds, logger.For("chatbot")),
		Admin:     service.NewAdminService(stats, users, activityRepo, cfg.Stock.Low, logger.For("admin")),
		Support:   service.NewSupportService(mailer, cfg.SupportAddress(), logger.For("support")),
		Cookies:   cookies,
		Checks:    checks,
		PublicDir: cfg.PublicDir,
		Log:       logger.For("http"),
	})

	return a, nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests and
// pending activity records before closing the stores.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	if a.dispatcher != nil {
		a.dispatcher.Start()
	}
	if a.sessions != nil {
		go a.sessions.RunSweeper(ctx, sweepInterval)
	}

	addr := ":" + strconv.Itoa(a.cfg.Port)
	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", addr).Msg("http server starting")
		errCh <- a.server.Start(addr)
	}()

	select {
	case <-ctx.Done():
		a.log.Info().Msg("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.shutdown(shutdownCtx)
	case err := <-errCh:
		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.drain(drainCtx)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server exited: %w", err)
	}
}

// shutdown stops the HTTP server and then drains the activity queue. The queue
// is drained even when the server fails to stop cleanly.
func (a *App) shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	a.drain(ctx)
	if err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

func (a *App) drain(ctx context.Context) {
	if a.dispatcher == nil {
		return
	}
	if err := a.dispatcher.Stop(ctx); err != nil {
		a.log.Warn().Err(err).Msg("activity queue not drained")
	}
}

func (a *App) close() {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.log.Warn().Err(err).Msg("close redis")
		}
		a.rdb = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn().Err(err).Msg("close postgres")
		}
		a.db = nil
	}
}
