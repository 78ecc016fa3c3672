// Package errors defines the sentinel errors shared across the service and
// the JSON error body every endpoint returns.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnknownSource     = errors.New("unknown record source")
	ErrSourceUnavailable = errors.New("record source unavailable")
	ErrRateLimited       = errors.New("rate limit exceeded")
	ErrCacheDisabled     = errors.New("caching is disabled")
	ErrInternal          = errors.New("internal error")
	ErrTimeout           = errors.New("operation timed out")
)

// codes are the machine-readable names clients see in Response.Code.
var codes = []struct {
	sentinel error
	code     string
	status   int
}{
	{ErrInvalidInput, "invalid_input", http.StatusBadRequest},
	{ErrUnknownSource, "unknown_source", http.StatusInternalServerError},
	{ErrSourceUnavailable, "source_unavailable", http.StatusServiceUnavailable},
	{ErrRateLimited, "rate_limited", http.StatusTooManyRequests},
	{ErrCacheDisabled, "cache_disabled", http.StatusServiceUnavailable},
	{ErrTimeout, "timeout", http.StatusGatewayTimeout},
}

// AppError attaches a client-facing message and status to a sentinel.
type AppError struct {
	Err        error
	Message    string
	StatusCode int
}

func (e *AppError) Error() string {
	return e.Err.Error() + ": " + e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func New(sentinel error, statusCode int, message string) *AppError {
	return &AppError{Err: sentinel, Message: message, StatusCode: statusCode}
}

func Newf(sentinel error, statusCode int, format string, args ...any) *AppError {
	return New(sentinel, statusCode, fmt.Sprintf(format, args...))
}

// HTTPStatusCode maps err to a response status. An AppError's own status
// wins; otherwise the first matching sentinel decides, defaulting to 500.
func HTTPStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	for _, c := range codes {
		if errors.Is(err, c.sentinel) {
			return c.status
		}
	}
	return http.StatusInternalServerError
}

// Code returns the machine-readable code for err, "internal" if unknown.
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.sentinel) {
			return c.code
		}
	}
	return "internal"
}

// Response is the JSON error body.
type Response struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ResponseFor builds the body for err. Only AppError messages reach clients;
// any other error is reported by its status text.
func ResponseFor(err error) Response {
	resp := Response{Code: Code(err), Error: http.StatusText(HTTPStatusCode(err))}
	var appErr *AppError
	if errors.As(err, &appErr) {
		resp.Error = appErr.Message
	}
	return resp
}

// Write sends err as a JSON error response and returns the status used.
func Write(w http.ResponseWriter, err error) int {
	status := HTTPStatusCode(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ResponseFor(err))
	return status
}
