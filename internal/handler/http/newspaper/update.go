package newspaper

import (
	"net/http"

	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/handler/http/auth"
	"newspaper-agency/internal/handler/http/pathutil"
	"newspaper-agency/internal/handler/http/respond"
	newspaperUC "newspaper-agency/internal/usecase/newspaper"
)

type UpdateHandler struct{ Svc Service }

// ServeHTTP edits a newspaper.
//
// @Summary      Update a newspaper
// @Description  Only publishers of the newspaper may edit it. Omitted fields are left unchanged; publishers, when given, replaces the whole list.
// @Tags         newspapers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Newspaper ID"
// @Param        newspaper body writeRequest true "Fields to change"
// @Success      200 {object} DTO
// @Failure      400 {object} respond.ErrorBody "Validation failed"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Not a publisher"
// @Failure      404 {object} respond.ErrorBody
// @Router       /newspapers/{id} [put]
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

	n, err := h.Svc.Update(r.Context(), auth.ActorFrom(r.Context()), newspaperUC.UpdateInput{
		ID:           id,
		Title:        req.Title,
		Content:      req.Content,
		TopicID:      req.TopicID,
		PublisherIDs: req.PublisherIDs,
	})
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, ToDTO(n))
}
