package http

import (
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"newspaper-agency/internal/handler/http/auth"
	"newspaper-agency/internal/handler/http/middleware"
	"newspaper-agency/internal/handler/http/newspaper"
	"newspaper-agency/internal/handler/http/redactor"
	"newspaper-agency/internal/handler/http/requestid"
	"newspaper-agency/internal/handler/http/topic"
	"newspaper-agency/internal/observability/tracing"
)

// DefaultMaxBodyBytes caps request bodies when RouterConfig leaves it zero.
const DefaultMaxBodyBytes = 1 << 20

// RouterConfig carries everything the public API is assembled from.
type RouterConfig struct {
	Topics     topic.Service
	Newspapers newspaper.Service
	Redactors  redactor.Service

	// Index counts; usually the same services as above.
	TopicCounter     Counter
	NewspaperCounter Counter
	RedactorCounter  Counter
	Sessions         *scs.SessionManager

	Login        auth.Authenticator
	Tokens       auth.TokenParser
	Actors       auth.ActorResolver
	LoginLimiter *middleware.LoginLimiter // optional

	Health *HealthHandler
	Ready  *ReadyHandler
	Docs   http.Handler // optional, mounted on /swagger/

	CORS         middleware.CORSConfig
	MaxBodyBytes int64
	Logger       *slog.Logger
}

// NewRouter registers every route and wraps the mux in the middleware
// chain. Order, outermost first: CORS, request ID, panic recovery, access
// log, body limit, HTTP metrics, bearer identification, tracing.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sessions := cfg.Sessions
	if sessions == nil {
		sessions = scs.New()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", sessions.LoadAndSave(&IndexHandler{
		Topics:     cfg.TopicCounter,
		Newspapers: cfg.NewspaperCounter,
		Redactors:  cfg.RedactorCounter,
		Sessions:   sessions,
	}))

	var login http.Handler = auth.TokenHandler(cfg.Login)
	if cfg.LoginLimiter != nil {
		login = cfg.LoginLimiter.Middleware(login)
	}
	mux.Handle("POST /auth/token", login)

	topic.Register(mux, cfg.Topics)
	newspaper.Register(mux, cfg.Newspapers)
	redactor.Register(mux, cfg.Redactors)

	if cfg.Health != nil {
		mux.Handle("GET /health", cfg.Health)
	}
	if cfg.Ready != nil {
		mux.Handle("GET /ready", cfg.Ready)
	}
	mux.Handle("GET /live", LiveHandler{})
	mux.Handle("GET /metrics", MetricsHandler())
	if cfg.Docs != nil {
		mux.Handle("GET /swagger/", cfg.Docs)
	}

	// Tracing sits next to the mux so it sees the matched pattern.
	return Chain(mux,
		middleware.CORS(cfg.CORS, logger),
		requestid.Middleware,
		Recover(logger),
		Logging(logger),
		LimitRequestBody(maxBody),
		MetricsMiddleware,
		auth.Identify(cfg.Tokens, cfg.Actors),
		tracing.Middleware,
	)
}
