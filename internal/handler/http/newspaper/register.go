package newspaper

import "net/http"

// Register registers the newspaper routes on mux.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /newspapers", ListHandler{svc})
	mux.Handle("POST /newspapers", CreateHandler{svc})
	mux.Handle("GET /newspapers/{id}", GetHandler{svc})
	mux.Handle("PUT /newspapers/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /newspapers/{id}", DeleteHandler{svc})
}
