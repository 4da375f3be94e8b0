package topic

import "net/http"

// Register registers the topic routes on mux. Authorization is decided by
// the use cases, so every route is reachable anonymously.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /topics", ListHandler{svc})
	mux.Handle("POST /topics", CreateHandler{svc})
	mux.Handle("GET /topics/{id}", GetHandler{svc})
	mux.Handle("PUT /topics/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /topics/{id}", DeleteHandler{svc})
}
