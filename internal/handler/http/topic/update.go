package topic

import (
	"net/http"

	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/handler/http/auth"
	"newspaper-agency/internal/handler/http/pathutil"
	"newspaper-agency/internal/handler/http/respond"
	topicUC "newspaper-agency/internal/usecase/topic"
)

type UpdateHandler struct{ Svc Service }

// ServeHTTP renames a topic.
//
// @Summary      Update a topic
// @Description  Requires the topics.manage permission. Omitted fields are left unchanged.
// @Tags         topics
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Topic ID"
// @Param        topic body writeRequest true "Fields to change"
// @Success      200 {object} DTO
// @Failure      400 {object} respond.ErrorBody "Validation failed"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden"
// @Failure      404 {object} respond.ErrorBody
// @Router       /topics/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r)
	if err != nil {
		respond.DomainError(w, entity.ErrNotFound)
		return
	}
	var req writeRequest
	if !respond.DecodeJSON(w, r, &req) {
		return
	}
	t, err := h.Svc.Update(r.Context(), auth.ActorFrom(r.Context()), topicUC.UpdateInput{ID: id, Name: req.Name})
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(t))
}
