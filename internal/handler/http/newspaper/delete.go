package newspaper

import (
	"net/http"

	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/handler/http/auth"
	"newspaper-agency/internal/handler/http/pathutil"
	"newspaper-agency/internal/handler/http/respond"
)

type DeleteHandler struct{ Svc Service }

// ServeHTTP deletes a newspaper.
//
// @Summary      Delete a newspaper
// @Description  Publishers may delete their newspapers; holders of newspapers.delete_any may delete any.
// @Tags         newspapers
// @Security     BearerAuth
// @Param        id path int true "Newspaper ID"
// @Success      204 "No Content"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden"
// @Failure      404 {object} respond.ErrorBody
// @Router       /newspapers/{id} [delete]
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
