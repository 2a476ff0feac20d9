// Package apierror provides the error envelope returned by the API.
// Every 4xx/5xx response goes through this package so internal details
// (driver errors, stack traces) never reach the client.
package apierror

// MensajeGenerico is the body of every 500 response.
const MensajeGenerico = "Algo salió mal!"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Error string `json:"error"`
}

func New(msg string) *APIError {
	return &APIError{Error: msg}
}

// Internal returns the generic envelope used for unhandled failures.
func Internal() *APIError {
	return New(MensajeGenerico)
}
