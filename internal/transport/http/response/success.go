package response

import (
	"encoding/json"
	"net/http"
)

// Envelope wraps every success payload; handlers never write bare objects,
// so clients can always read body.data.
type Envelope struct {
	Data any `json:"data"`
}

const contentTypeJSON = "application/json; charset=utf-8"

// WriteJSON writes v with the given status. Encoding failures after the
// status line are unrecoverable, so the error is discarded.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", contentTypeJSON)
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func envelope(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, Envelope{Data: data})
}

func OK(w http.ResponseWriter, data any) {
	envelope(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	envelope(w, http.StatusCreated, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
