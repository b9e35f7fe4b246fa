// internal/engine/errors.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Common engine errors
var (
	ErrBrowserCrash = errors.New("browser crashed")
	ErrTimeout      = errors.New("request timeout")
	ErrInvalidURL   = errors.New("invalid URL")
	ErrNetworkError = errors.New("network error")
	ErrBadStatus    = errors.New("unexpected status code")
	ErrParseError   = errors.New("failed to parse response")
)

// ErrorCode represents a specific fetch failure condition
type ErrorCode string

const (
	ErrCodeHTTPStatus   ErrorCode = "HTTP_STATUS"
	ErrCodeTimeout      ErrorCode = "TIMEOUT"
	ErrCodeValidation   ErrorCode = "VALIDATION"
	ErrCodeBrowserCrash ErrorCode = "BROWSER_CRASH"
	ErrCodeNetworkError ErrorCode = "NETWORK_ERROR"
	ErrCodeParseError   ErrorCode = "PARSE_ERROR"
)

// EngineError wraps fetch failures with additional context
type EngineError struct {
	Code       ErrorCode
	Message    string
	StatusCode int
	// RetryAfter is the server's requested delay, zero when it sent none
	RetryAfter time.Duration
	Underlying error
	Details    map[string]interface{}
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *EngineError) Unwrap() error {
	return e.Underlying
}

// Is checks if the error matches the target
func (e *EngineError) Is(target error) bool {
	if t, ok := target.(*EngineError); ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Underlying, target)
}

// GetStatusCode exposes the HTTP status for retry classification
func (e *EngineError) GetStatusCode() int {
	return e.StatusCode
}

// GetRetryAfter exposes the server's Retry-After delay to the retry loop
func (e *EngineError) GetRetryAfter() time.Duration {
	return e.RetryAfter
}

// NewEngineError creates a new EngineError
func NewEngineError(code ErrorCode, message string, err error) *EngineError {
	return &EngineError{
		Code:       code,
		Message:    message,
		Underlying: err,
		Details:    make(map[string]interface{}),
	}
}

// NewStatusError reports a non-2xx response
func NewStatusError(url string, status int) *EngineError {
	e := NewEngineError(ErrCodeHTTPStatus, fmt.Sprintf("GET %s returned %d", url, status), ErrBadStatus)
	e.StatusCode = status
	return e.WithDetail("url", url)
}

// ParseRetryAfter reads a Retry-After header given in seconds or as an HTTP
// date. Anything unparseable, or a date in the past, yields zero.
func ParseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(value); err == nil && t.After(now) {
		return t.Sub(now)
	}
	return 0
}

// WithDetail adds a detail to the error
func (e *EngineError) WithDetail(key string, value interface{}) *EngineError {
	e.Details[key] = value
	return e
}

// Classify maps a transport error onto an EngineError code
func Classify(url string, err error) *EngineError {
	if err == nil {
		return nil
	}
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return NewEngineError(ErrCodeTimeout, "fetch timed out", errors.Join(ErrTimeout, err)).WithDetail("url", url)
	default:
		return NewEngineError(ErrCodeNetworkError, "fetch failed", errors.Join(ErrNetworkError, err)).WithDetail("url", url)
	}
}
