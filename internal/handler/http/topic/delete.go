package topic

import (
	"net/http"
	"strconv"

	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/handler/http/auth"
	"newspaper-agency/internal/handler/http/pathutil"
	"newspaper-agency/internal/handler/http/respond"
)

// CascadeHeader reports how many newspapers went with a deleted topic.
const CascadeHeader = "X-Deleted-Newspapers"

type DeleteHandler struct{ Svc Service }

// ServeHTTP deletes a topic together with its newspapers.
//
// @Summary      Delete a topic
// @Description  Requires the topics.manage permission. Every newspaper filed under the topic is deleted too.
// @Tags         topics
// @Security     BearerAuth
// @Param        id path int true "Topic ID"
// @Success      204 "No Content" headers(X-Deleted-Newspapers=integer)
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      403 {object} respond.ErrorBody "Forbidden"
// @Failure      404 {object} respond.ErrorBody
// @Router       /topics/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r)
	if err != nil {
		respond.DomainError(w, entity.ErrNotFound)
		return
	}
	cascaded, err := h.Svc.Delete(r.Context(), auth.ActorFrom(r.Context()), id)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	w.Header().Set(CascadeHeader, strconv.FormatInt(cascaded, 10))
	w.WriteHeader(http.StatusNoContent)
}
