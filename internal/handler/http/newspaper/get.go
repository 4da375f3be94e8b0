package newspaper

import (
	"net/http"

	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/handler/http/pathutil"
	"newspaper-agency/internal/handler/http/respond"
)

type GetHandler struct{ Svc Service }

// ServeHTTP returns one newspaper.
//
// @Summary      Get a newspaper
// @Tags         newspapers
// @Produce      json
// @Param        id path int true "Newspaper ID"
// @Success      200 {object} DTO
// @Failure      404 {object} respond.ErrorBody
// @Router       /newspapers/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r)
	if err != nil {
		respond.DomainError(w, entity.ErrNotFound)
		return
	}
	n, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, ToDTO(n))
}
