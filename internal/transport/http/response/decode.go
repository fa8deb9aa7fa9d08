package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fashionhub/auth-service/internal/domain"
)

var errTrailingData = errors.New("request body holds more than one JSON value")

// DecodeJSON decodes exactly one JSON value from the request body into dst.
// Bodies like {}{} or {} followed by garbage are rejected.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return domain.ErrInvalidJSON(err)
	}
	if dec.More() {
		return domain.ErrInvalidJSON(errTrailingData)
	}
	return nil
}
