package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"newspaper-agency/internal/config"
	hhttp "newspaper-agency/internal/handler/http"
	hauth "newspaper-agency/internal/handler/http/auth"
	"newspaper-agency/internal/handler/http/middleware"
	"newspaper-agency/internal/infra/adapter/persistence"
	"newspaper-agency/internal/infra/db"
	"newspaper-agency/internal/observability/logging"
	"newspaper-agency/internal/observability/slo"
	"newspaper-agency/internal/resilience/circuitbreaker"
	"newspaper-agency/internal/resilience/retry"
	authservice "newspaper-agency/internal/service/auth"
	"newspaper-agency/internal/service/authz"
	newspaperUC "newspaper-agency/internal/usecase/newspaper"
	redactorUC "newspaper-agency/internal/usecase/redactor"
	topicUC "newspaper-agency/internal/usecase/topic"
	pkgconfig "newspaper-agency/pkg/config"

	_ "newspaper-agency/docs" // swagger docs
)

// @title           Newspaper Agency API
// @version         1.0
// @description     Manage topics, newspapers and the redactors who publish them.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token from POST /auth/token, sent as "Bearer {token}".

func main() {
	logger := initLogger()
	if err := run(logger); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger installs the JSON logger as the process default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	tokens, err := authservice.NewTokenIssuer(os.Getenv("JWT_SECRET"), cfg.Security.TokenTTL)
	if err != nil {
		return fmt.Errorf("JWT_SECRET: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, dialect, err := initDatabase(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Unwrap().Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	limiter, err := newLoginLimiter(cfg)
	if err != nil {
		return err
	}
	handler, err := setupServer(logger, cfg, database, dialect, tokens, limiter)
	if err != nil {
		return err
	}
	return runServer(ctx, logger, cfg.HTTP, handler, limiter)
}

// initDatabase connects with retries, since the database may still be
// starting, then wraps the pool in a circuit breaker and migrates it.
func initDatabase(ctx context.Context, logger *slog.Logger) (*circuitbreaker.DB, db.Dialect, error) {
	rawURL := pkgconfig.GetEnvString("DATABASE_URL", "sqlite:agency.db")

	var (
		conn    *circuitbreaker.DB
		dialect db.Dialect
	)
	err := retry.WithBackoff(ctx, retry.StartupConfig(), func() error {
		sqlDB, d, err := db.Open(ctx, rawURL, db.ConnectionConfigFromEnv())
		if err != nil {
			return err
		}
		conn, dialect = circuitbreaker.WrapDB(sqlDB, circuitbreaker.DBConfig()), d
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("connect database: %w", err)
	}

	if err := db.MigrateUp(ctx, conn, dialect); err != nil {
		_ = conn.Unwrap().Close()
		return nil, "", fmt.Errorf("migrate database: %w", err)
	}
	logger.Info("database ready", slog.String("dialect", string(dialect)))
	return conn, dialect, nil
}

func newLoginLimiter(cfg *config.AppConfig) (*middleware.LoginLimiter, error) {
	proxies, err := middleware.ParseTrustedProxies(cfg.HTTP.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	return middleware.NewLoginLimiter(middleware.LoginLimiterConfig{
		PerMinute: cfg.LoginLimit.PerMinute,
		Burst:     cfg.LoginLimit.Burst,
		Idle:      cfg.LoginLimit.Idle,
		ClientIP:  middleware.ClientIP{TrustedProxies: proxies},
		OnReject:  hauth.RecordThrottled,
	}), nil
}

// setupServer builds the services over the dialect's repositories and
// returns the fully wrapped handler.
func setupServer(
	logger *slog.Logger,
	cfg *config.AppConfig,
	database *circuitbreaker.DB,
	dialect db.Dialect,
	tokens *authservice.TokenIssuer,
	limiter *middleware.LoginLimiter,
) (http.Handler, error) {
	repos, err := persistence.New(database, dialect)
	if err != nil {
		return nil, err
	}
	gate := authz.New()

	topics := &topicUC.Service{Repo: repos.Topics, Gate: gate, PageSize: cfg.Pagination.Topics}
	newspapers := &newspaperUC.Service{
		Repo:      repos.Newspapers,
		Topics:    repos.Topics,
		Redactors: repos.Redactors,
		Gate:      gate,
		PageSize:  cfg.Pagination.Newspapers,
	}
	redactors := &redactorUC.Service{
		Repo:       repos.Redactors,
		Newspapers: repos.Newspapers,
		Gate:       gate,
		Hasher:     authservice.NewBcryptHasher(),
		Policy:     cfg.Security.PasswordPolicy(),
		Tokens:     tokens,
		PageSize:   cfg.Pagination.Redactors,
	}

	sessions := scs.New()
	sessions.Lifetime = 24 * time.Hour
	sessions.Cookie.Name = "agency_session"
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.SameSite = http.SameSiteLaxMode

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.HTTP.AllowedOrigins
	if len(cors.AllowedOrigins) > 0 {
		logger.Info("CORS enabled", slog.Any("allowed_origins", cors.AllowedOrigins))
	}

	return hhttp.NewRouter(hhttp.RouterConfig{
		Topics:           topics,
		Newspapers:       newspapers,
		Redactors:        redactors,
		TopicCounter:     topics,
		NewspaperCounter: newspapers,
		RedactorCounter:  redactors,
		Sessions:         sessions,
		Login:            redactors,
		Tokens:           tokens,
		Actors:           redactors,
		LoginLimiter:     limiter,
		Health: &hhttp.HealthHandler{
			DB:      database,
			Stats:   database.Unwrap().Stats,
			Breaker: database,
			Version: pkgconfig.GetEnvString("VERSION", "dev"),
			Logger:  logger,
		},
		Ready:        &hhttp.ReadyHandler{DB: database},
		Docs:         httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")),
		CORS:         cors,
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
		Logger:       logger,
	}), nil
}

// runServer serves until ctx is cancelled, then drains in-flight requests
// for at most cfg.ShutdownTimeout.
func runServer(ctx context.Context, logger *slog.Logger, cfg config.HTTPConfig, handler http.Handler, limiter *middleware.LoginLimiter) error {
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", slog.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return limiter.Run(gctx, time.Minute)
	})
	g.Go(func() error {
		return slo.Default.Run(gctx, time.Minute)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
