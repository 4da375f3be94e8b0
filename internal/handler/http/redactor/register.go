package redactor

import "net/http"

// Register registers the redactor routes on mux. POST /redactors is the
// sign-up endpoint.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /redactors", ListHandler{svc})
	mux.Handle("POST /redactors", RegisterHandler{svc})
	mux.Handle("GET /redactors/{id}", GetHandler{svc})
	mux.Handle("PUT /redactors/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /redactors/{id}", DeleteHandler{svc})
}
