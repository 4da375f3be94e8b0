package newspaper

import (
	"net/http"

	"newspaper-agency/internal/handler/http/auth"
	"newspaper-agency/internal/handler/http/respond"
	newspaperUC "newspaper-agency/internal/usecase/newspaper"
)

type CreateHandler struct{ Svc Service }

// ServeHTTP files a newspaper dated today.
//
// @Summary      Create a newspaper
// @Description  Any signed-in redactor may file a newspaper. published_date is set by the server.
// @Tags         newspapers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        newspaper body writeRequest true "Newspaper"
// @Success      201 {object} DTO
// @Failure      400 {object} respond.ErrorBody "Validation failed"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Router       /newspapers [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req writeRequest
	if !respond.DecodeJSON(w, r, &req) {
		return
	}
	var in newspaperUC.CreateInput
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Content != nil {
		in.Content = *req.Content
	}
	if req.TopicID != nil {
		in.TopicID = *req.TopicID
	}
	if req.PublisherIDs != nil {
		in.PublisherIDs = *req.PublisherIDs
	}

	n, err := h.Svc.Create(r.Context(), auth.ActorFrom(r.Context()), in)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, ToDTO(n))
}
