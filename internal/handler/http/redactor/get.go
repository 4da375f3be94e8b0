package redactor

import (
	"net/http"

	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/handler/http/newspaper"
	"newspaper-agency/internal/handler/http/pathutil"
	"newspaper-agency/internal/handler/http/respond"
)

type GetHandler struct{ Svc Service }

// ServeHTTP returns a redactor's profile.
//
// @Summary      Get a redactor
// @Description  Returns the redactor together with the newspapers they publish.
// @Tags         redactors
// @Produce      json
// @Param        id path int true "Redactor ID"
// @Success      200 {object} ProfileDTO
// @Failure      404 {object} respond.ErrorBody
// @Router       /redactors/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r)
	if err != nil {
		respond.DomainError(w, entity.ErrNotFound)
		return
	}
	p, err := h.Svc.GetProfile(r.Context(), id)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	out := ProfileDTO{DTO: toDTO(p.Redactor), Newspapers: make([]newspaper.DTO, 0, len(p.Newspapers))}
	for _, n := range p.Newspapers {
		out.Newspapers = append(out.Newspapers, newspaper.ToDTO(n))
	}
	respond.JSON(w, http.StatusOK, out)
}
