package http

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"newspaper-agency/internal/handler/http/respond"
)

// Counter reports how many records of one kind are stored.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// IndexResponse is the body of GET /.
type IndexResponse struct {
	NumTopics     int64 `json:"num_topics"`
	NumNewspapers int64 `json:"num_newspapers"`
	NumRedactors  int64 `json:"num_redactors"`
	NumVisits     int   `json:"num_visits"`
}

// IndexHandler serves the landing summary. The visit counter lives in the
// caller's session, so Sessions.LoadAndSave must wrap the handler. Mount
// it on "GET /{$}".
type IndexHandler struct {
	Topics     Counter
	Newspapers Counter
	Redactors  Counter
	Sessions   *scs.SessionManager
}

const visitsKey = "num_visits"

func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var out IndexResponse
	var err error
	if out.NumTopics, err = h.Topics.Count(ctx); err != nil {
		respond.DomainError(w, err)
		return
	}
	if out.NumNewspapers, err = h.Newspapers.Count(ctx); err != nil {
		respond.DomainError(w, err)
		return
	}
	if out.NumRedactors, err = h.Redactors.Count(ctx); err != nil {
		respond.DomainError(w, err)
		return
	}

	out.NumVisits = h.Sessions.GetInt(ctx, visitsKey) + 1
	h.Sessions.Put(ctx, visitsKey, out.NumVisits)

	respond.JSON(w, http.StatusOK, out)
}
