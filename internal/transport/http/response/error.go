package response

import (
	"errors"
	"net/http"

	"github.com/fashionhub/auth-service/internal/domain"
)

type ErrorBody struct {
	Error ErrorPayload `json:"error"`
}

type ErrorPayload struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Meta      map[string]string `json:"meta,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// kindStatus maps domain error kinds onto HTTP status codes. Anything not
// listed, including non-domain errors, is an opaque 500.
var kindStatus = map[domain.ErrKind]int{
	domain.KindValidation:     http.StatusBadRequest,
	domain.KindAuth:           http.StatusUnauthorized,
	domain.KindForbidden:      http.StatusForbidden,
	domain.KindNotFound:       http.StatusNotFound,
	domain.KindConflict:       http.StatusConflict,
	domain.KindRateLimited:    http.StatusTooManyRequests,
	domain.KindInfrastructure: http.StatusServiceUnavailable,
	domain.KindInternal:       http.StatusInternalServerError,
}

// WriteError renders err as the JSON error body. Domain errors carry their
// own code, message and meta; any other error becomes internal_error with
// no detail, so driver messages never reach clients.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	payload := ErrorPayload{
		Code:      "internal_error",
		Message:   "internal error",
		RequestID: RequestIDFromRequest(r),
	}
	status := http.StatusInternalServerError

	var de *domain.Error
	if errors.As(err, &de) {
		payload.Code = de.Code
		payload.Message = de.Message
		payload.Meta = de.Meta
		if s, ok := kindStatus[de.Kind]; ok {
			status = s
		}
	}

	WriteJSON(w, status, ErrorBody{Error: payload})
}
