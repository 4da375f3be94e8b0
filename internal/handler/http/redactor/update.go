package redactor

import (
	"net/http"
	"strconv"

	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/handler/http/auth"
	"newspaper-agency/internal/handler/http/pathutil"
	"newspaper-agency/internal/handler/http/respond"
	redactorUC "newspaper-agency/internal/usecase/redactor"
)

type UpdateHandler struct{ Svc Service }

// ServeHTTP edits the caller's own profile.
//
// @Summary      Update a redactor
// @Description  Redactors may only edit themselves. Omitted fields are left unchanged; years_of_experience null clears it. The password cannot be changed here.
// @Tags         redactors
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Redactor ID"
// @Param        redactor body updateRequest true "Fields to change"
// @Success      200 {object} DTO
// @Failure      400 {object} respond.ErrorBody "Validation failed"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Not your profile"
// @Failure      404 {object} respond.ErrorBody
// @Router       /redactors/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r)
	if err != nil {
		respond.DomainError(w, entity.ErrNotFound)
		return
	}
	var req updateRequest
	if !respond.DecodeJSON(w, r, &req) {
		return
	}

	in := redactorUC.UpdateInput{
		ID:        id,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if req.YearsOfExperience.Set {
		in.YearsOfExperience = req.YearsOfExperience.Value
		in.ClearYearsOfExperience = req.YearsOfExperience.Value == nil
	}

	red, err := h.Svc.Update(r.Context(), auth.ActorFrom(r.Context()), in)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(red))
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
