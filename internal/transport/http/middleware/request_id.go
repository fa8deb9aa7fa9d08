package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/fashionhub/auth-service/internal/transport/http/response"
)

const HeaderXRequestID = "X-Request-Id"

// RequestID attaches a request id to the context and echoes it back in the
// response header. An id supplied by the caller is kept so a gateway can
// correlate its own logs with ours; otherwise a fresh uuid is minted.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderXRequestID, id)
		next.ServeHTTP(w, r.WithContext(response.WithRequestID(r.Context(), id)))
	})
}
