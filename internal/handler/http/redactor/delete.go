package redactor

import (
	"net/http"

	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/handler/http/auth"
	"newspaper-agency/internal/handler/http/pathutil"
	"newspaper-agency/internal/handler/http/respond"
)

type DeleteHandler struct{ Svc Service }

// ServeHTTP deletes a redactor account.
//
// @Summary      Delete a redactor
// @Description  Redactors may delete themselves; holders of redactors.delete_any may delete anyone. The account is removed from every newspaper it published; the newspapers stay.
// @Tags         redactors
// @Security     BearerAuth
// @Param        id path int true "Redactor ID"
// @Success      204 "No Content"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden"
// @Failure      404 {object} respond.ErrorBody
// @Router       /redactors/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r)
	if err != nil {
		respond.DomainError(w, entity.ErrNotFound)
		return
	}
	if err := h.Svc.Delete(r.Context(), auth.ActorFrom(r.Context()), id); err != nil {
		respond.DomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
