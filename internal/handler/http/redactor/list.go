package redactor

import (
	"net/http"

	"newspaper-agency/internal/common/pagination"
	"newspaper-agency/internal/handler/http/auth"
	"newspaper-agency/internal/handler/http/respond"
	"newspaper-agency/internal/repository"
)

type ListHandler struct{ Svc Service }

// ServeHTTP lists redactors.
//
// @Summary      List redactors
// @Description  Returns one page of redactors ordered by username. q matches username, first name or last name.
// @Tags         redactors
// @Produce      json
// @Param        q    query string false "Name fragment"
// @Param        page query int    false "Page number (1-based)"
// @Success      200 {object} pagination.Response[DTO]
// @Failure      400 {object} respond.ErrorBody "Invalid page"
// @Router       /redactors [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.ParsePage(r.URL.Query().Get("page"))
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	filters := repository.RedactorFilters{SearchText: r.URL.Query().Get("q")}

	res, err := h.Svc.List(r.Context(), auth.ActorFrom(r.Context()), filters, page)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	out := make([]DTO, 0, len(res.Data))
	for _, red := range res.Data {
		out = append(out, toDTO(red))
	}
	respond.JSON(w, http.StatusOK, pagination.NewResponse(out, res.Pagination))
}
