package newspaper

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"newspaper-agency/internal/common/pagination"
	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/handler/http/auth"
	"newspaper-agency/internal/handler/http/respond"
	"newspaper-agency/internal/repository"
)

type ListHandler struct{ Svc Service }

// ServeHTTP lists newspapers.
//
// @Summary      List newspapers
// @Description  Returns one page of newspapers in filing order. q matches title or content, case-insensitively.
// @Tags         newspapers
// @Produce      json
// @Param        q        query string false "Title or content fragment"
// @Param        topic_id query int    false "Only newspapers of this topic"
// @Param        page     query int    false "Page number (1-based)"
// @Success      200 {object} pagination.Response[DTO]
// @Failure      400 {object} respond.ErrorBody "Invalid page or topic_id"
// @Router       /newspapers [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := &entity.ValidationErrors{}

	page, err := pagination.ParsePage(q.Get("page"))
	var pageErr *entity.ValidationErrors
	if errors.As(err, &pageErr) {
		v.Merge(pageErr)
	}

	filters := repository.NewspaperFilters{SearchText: q.Get("q")}
	if raw := strings.TrimSpace(q.Get("topic_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			v.Add("topic_id", "must be an integer")
		} else {
			filters.TopicID = &id
		}
	}
	if err := v.Err(); err != nil {
		respond.DomainError(w, err)
		return
	}

	res, err := h.Svc.List(r.Context(), auth.ActorFrom(r.Context()), filters, page)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	out := make([]DTO, 0, len(res.Data))
	for _, n := range res.Data {
		out = append(out, ToDTO(n))
	}
	respond.JSON(w, http.StatusOK, pagination.NewResponse(out, res.Pagination))
}
