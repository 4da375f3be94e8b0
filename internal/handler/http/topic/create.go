package topic

import (
	"net/http"

	"newspaper-agency/internal/handler/http/auth"
	"newspaper-agency/internal/handler/http/respond"
	topicUC "newspaper-agency/internal/usecase/topic"
)

type CreateHandler struct{ Svc Service }

// ServeHTTP creates a topic.
//
// @Summary      Create a topic
// @Description  Requires the topics.manage permission.
// @Tags         topics
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        topic body writeRequest true "Topic"
// @Success      201 {object} DTO
// @Failure      400 {object} respond.ErrorBody "Validation failed"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden"
// @Router       /topics [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req writeRequest
	if !respond.DecodeJSON(w, r, &req) {
		return
	}
	in := topicUC.CreateInput{}
	if req.Name != nil {
		in.Name = *req.Name
	}
	t, err := h.Svc.Create(r.Context(), auth.ActorFrom(r.Context()), in)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(t))
}
