package api

import (
	"encoding/json"
	"net/http"
)

const (
	// maxAuthBodySize caps login and password-change bodies.
	maxAuthBodySize = 16 << 10
	// maxBodySize caps every other JSON request body.
	maxBodySize = 1 << 20
)

// decodeJSON reads and decodes a JSON request body into T. Unknown
// fields are rejected, which doubles as the patch-field allow-list: a
// client cannot smuggle id or createdAt into an update. On failure a
// 400 is written and ok is false.
func decodeJSON[T any](w http.ResponseWriter, r *http.Request, maxSize int64) (req T, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	return req, true
}
