package engine

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2025, 8, 21, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 30*time.Second, ParseRetryAfter("30", now))
	assert.Equal(t, 2*time.Minute, ParseRetryAfter(now.Add(2*time.Minute).Format(http.TimeFormat), now))
	assert.Zero(t, ParseRetryAfter("", now))
	assert.Zero(t, ParseRetryAfter("-5", now))
	assert.Zero(t, ParseRetryAfter("soon", now))
	assert.Zero(t, ParseRetryAfter(now.Add(-time.Minute).Format(http.TimeFormat), now))
}

func TestNewStatusError(t *testing.T) {
	err := NewStatusError("https://example.com/jobs", http.StatusServiceUnavailable)

	assert.Equal(t, ErrCodeHTTPStatus, err.Code)
	assert.Equal(t, http.StatusServiceUnavailable, err.GetStatusCode())
	assert.Equal(t, "https://example.com/jobs", err.Details["url"])
	assert.ErrorIs(t, err, ErrBadStatus)
	assert.ErrorIs(t, err, &EngineError{Code: ErrCodeHTTPStatus})
}

func TestClassify(t *testing.T) {
	assert.Nil(t, Classify("u", nil))

	timeout := Classify("u", context.DeadlineExceeded)
	assert.Equal(t, ErrCodeTimeout, timeout.Code)

	network := Classify("u", errors.New("connection refused"))
	assert.Equal(t, ErrCodeNetworkError, network.Code)

	existing := NewStatusError("u", 404)
	assert.Same(t, existing, Classify("u", existing))
}

func TestClassify_WrapsSentinels(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Classify("u", cause)

	assert.ErrorIs(t, err, ErrNetworkError)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, Classify("u", context.DeadlineExceeded), ErrTimeout)
}
