package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/handler/http/respond"
	"newspaper-agency/internal/observability/logging"
	redactorUC "newspaper-agency/internal/usecase/redactor"
)

// Authenticator verifies credentials and issues a token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*redactorUC.LoginResult, error)
}

type loginRequest struct {
	Username string `json:"username" example:"editor"`
	Password string `json:"password" example:"your_password"`
}

type tokenResponse struct {
	Token      string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt  time.Time `json:"expires_at"`
	RedactorID int64     `json:"redactor_id" example:"1"`
}

// TokenHandler authenticates a redactor and issues a bearer token.
//
// @Summary      Obtain a bearer token
// @Description  Checks username and password and returns a signed token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Credentials"
// @Success      200 {object} tokenResponse
// @Failure      400 {object} respond.ErrorBody "Malformed body"
// @Failure      401 {object} respond.ErrorBody "Invalid credentials"
// @Failure      429 {object} respond.ErrorBody "Too many requests"
// @Router       /auth/token [post]
func TokenHandler(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := logging.FromContext(r.Context())

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RecordLogin("invalid_request", time.Since(start).Seconds())
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}

		res, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			result := "error"
			if errors.Is(err, entity.ErrInvalidCredentials) {
				result = "invalid_credentials"
			}
			RecordLogin(result, time.Since(start).Seconds())
			logger.Warn("authentication failed",
				slog.String("reason", result),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			respond.DomainError(w, err)
			return
		}

		RecordLogin("success", time.Since(start).Seconds())
		logger.Info("authentication successful",
			slog.Int64("redactor_id", res.Redactor.ID),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		respond.JSON(w, http.StatusOK, tokenResponse{
			Token:      res.Token.Value,
			ExpiresAt:  res.Token.ExpiresAt,
			RedactorID: res.Redactor.ID,
		})
	}
}
