// Package auth resolves the acting redactor of a request from its bearer
// token and serves the login endpoint.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/handler/http/respond"
	"newspaper-agency/internal/observability/logging"
	authservice "newspaper-agency/internal/service/auth"
	"newspaper-agency/internal/service/authz"
)

type ctxKey string

const ctxActor ctxKey = "actor"

// TokenParser verifies a raw bearer token.
type TokenParser interface {
	Parse(raw string) (*authservice.Claims, error)
}

// ActorResolver loads the current permissions of a token holder.
type ActorResolver interface {
	ResolveActor(ctx context.Context, redactorID int64) (authz.Actor, error)
}

// WithActor stores actor in ctx.
func WithActor(ctx context.Context, actor authz.Actor) context.Context {
	return context.WithValue(ctx, ctxActor, actor)
}

// ActorFrom returns the actor of the request, anonymous if none was set.
func ActorFrom(ctx context.Context) authz.Actor {
	if a, ok := ctx.Value(ctxActor).(authz.Actor); ok {
		return a
	}
	return authz.Anonymous()
}

// Identify attaches the acting redactor to every request.
//
// Authentication is optional: a request without an Authorization header
// proceeds as anonymous and each operation decides whether that is enough.
// A header that is present but malformed, expired, forged, or names an
// account that no longer exists is answered with 401 straight away.
func Identify(parser TokenParser, resolver ActorResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), authz.Anonymous())))
				return
			}

			raw, ok := bearer(header)
			if !ok {
				RecordBearerRejection("malformed")
				respond.DomainError(w, entity.ErrAuthenticationRequired)
				return
			}
			claims, err := parser.Parse(raw)
			if err != nil {
				RecordBearerRejection("invalid")
				respond.DomainError(w, entity.ErrAuthenticationRequired)
				return
			}
			actor, err := resolver.ResolveActor(r.Context(), claims.RedactorID)
			if err != nil {
				if errors.Is(err, entity.ErrAuthenticationRequired) {
					RecordBearerRejection("inactive")
				}
				respond.DomainError(w, err)
				return
			}

			ctx := WithActor(r.Context(), actor)
			logger := logging.FromContext(ctx).With(slog.Int64("actor_id", actor.RedactorID))
			next.ServeHTTP(w, r.WithContext(logging.WithLogger(ctx, logger)))
		})
	}
}

func bearer(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	raw := strings.TrimSpace(header[len(prefix):])
	return raw, raw != ""
}
