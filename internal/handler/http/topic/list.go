package topic

import (
	"net/http"

	"newspaper-agency/internal/common/pagination"
	"newspaper-agency/internal/handler/http/auth"
	"newspaper-agency/internal/handler/http/respond"
	"newspaper-agency/internal/repository"
)

type ListHandler struct{ Svc Service }

// ServeHTTP lists topics.
//
// @Summary      List topics
// @Description  Returns one page of topics ordered by name, optionally filtered by a name fragment.
// @Tags         topics
// @Produce      json
// @Param        name query string false "Case-insensitive name fragment"
// @Param        page query int false "Page number (1-based)"
// @Success      200 {object} pagination.Response[DTO]
// @Failure      400 {object} respond.ErrorBody "Invalid page"
// @Failure      500 {object} respond.ErrorBody
// @Router       /topics [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.ParsePage(r.URL.Query().Get("page"))
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	filters := repository.TopicFilters{NameText: r.URL.Query().Get("name")}

	res, err := h.Svc.List(r.Context(), auth.ActorFrom(r.Context()), filters, page)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	out := make([]DTO, 0, len(res.Data))
	for _, t := range res.Data {
		out = append(out, toDTO(t))
	}
	respond.JSON(w, http.StatusOK, pagination.NewResponse(out, res.Pagination))
}
