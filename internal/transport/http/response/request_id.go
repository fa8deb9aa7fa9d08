package response

import (
	"context"
	"net/http"
)

type ctxKey string

const ctxRequestID ctxKey = "request_id"

// WithRequestID stores the request id; set by the RequestID middleware.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxRequestID, id)
}

func RequestIDFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(ctxRequestID).(string); ok {
		return s
	}
	return ""
}

func RequestIDFromRequest(r *http.Request) string {
	return RequestIDFromContext(r.Context())
}
