package respond

import (
	"encoding/json"
	"errors"
	"net/http"
)

// DecodeJSON decodes the request body into dst. On failure it writes a 400
// (or 413 when the body limit was hit) and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		JSON(w, http.StatusRequestEntityTooLarge, ErrorBody{Error: "request body too large"})
		return false
	}
	JSON(w, http.StatusBadRequest, ErrorBody{Error: "invalid request body"})
	return false
}
