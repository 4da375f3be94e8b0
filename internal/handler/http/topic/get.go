package topic

import (
	"net/http"

	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/handler/http/pathutil"
	"newspaper-agency/internal/handler/http/respond"
)

type GetHandler struct{ Svc Service }

// ServeHTTP returns one topic.
//
// @Summary      Get a topic
// @Tags         topics
// @Produce      json
// @Param        id path int true "Topic ID"
// @Success      200 {object} DTO
// @Failure      404 {object} respond.ErrorBody
// @Router       /topics/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r)
	if err != nil {
		respond.DomainError(w, entity.ErrNotFound)
		return
	}
	t, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(t))
}
