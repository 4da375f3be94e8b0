package redactor

import (
	"log/slog"
	"net/http"

	"newspaper-agency/internal/handler/http/auth"
	"newspaper-agency/internal/handler/http/respond"
	"newspaper-agency/internal/observability/logging"
	redactorUC "newspaper-agency/internal/usecase/redactor"
)

type RegisterHandler struct{ Svc Service }

// ServeHTTP registers a redactor.
//
// @Summary      Register a redactor
// @Description  Anonymous callers sign themselves up and receive a token in session. Holders of redactors.delete_any may register others; they stay signed in as themselves.
// @Tags         redactors
// @Accept       json
// @Produce      json
// @Param        redactor body registerRequest true "Sign-up form"
// @Success      201 {object} RegisterResponse
// @Failure      400 {object} respond.ErrorBody "Validation failed"
// @Failure      403 {object} respond.ErrorBody "Signed in without redactors.delete_any"
// @Router       /redactors [post]
func (h RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !respond.DecodeJSON(w, r, &req) {
		return
	}
	res, err := h.Svc.Register(r.Context(), auth.ActorFrom(r.Context()), redactorUC.RegisterInput{
		Username:          req.Username,
		Password:          req.Password,
		PasswordConfirm:   req.PasswordConfirm,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		YearsOfExperience: req.YearsOfExperience,
	})
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	out := RegisterResponse{Redactor: toDTO(res.Redactor)}
	if res.Session != nil {
		out.Session = &TokenDTO{Token: res.Session.Token.Value, ExpiresAt: res.Session.Token.ExpiresAt}
		logging.FromContext(r.Context()).Info("redactor signed in after registration",
			slog.Int64("redactor_id", res.Session.RedactorID))
	}
	w.Header().Set("Location", "/redactors/"+itoa(res.Redactor.ID))
	respond.JSON(w, http.StatusCreated, out)
}
