package navigation

import (
	"errors"
	"fmt"
	"net/http"
)

// Navigation errors.
var (
	ErrNotFound      = errors.New("route not found")
	ErrConfiguration = errors.New("invalid route configuration")
	ErrMissingParam  = errors.New("missing route parameter")
)

// ConfigError describes a route definition rejected by New.
// Index is the position of the offending definition, or -1 when the
// error concerns the table itself rather than a single definition.
type ConfigError struct {
	Index  int
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s %q: %s", ErrConfiguration, e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("%s: route %d: %s %q: %s", ErrConfiguration, e.Index, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// MapHTTPStatus maps navigation errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrMissingParam) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
