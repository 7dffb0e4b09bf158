package reasoning

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// Error message string constants
const (
	ErrMsgTimeout           = "reasoning request timed out"
	ErrMsgRateLimited       = "reasoning service rate limited"
	ErrMsgServerError       = "reasoning service unavailable"
	ErrMsgConnectionFailed  = "reasoning connection failed"
	ErrMsgClientError       = "reasoning request rejected"
	ErrMsgMalformedResponse = "malformed reasoning response"
)

// Typed reasoning failures. Transport and service errors are classified here
// so callers can decide between retrying and degrading.
var (
	ErrTimeout           = errors.New(ErrMsgTimeout)
	ErrRateLimited       = errors.New(ErrMsgRateLimited)
	ErrServerError       = errors.New(ErrMsgServerError)
	ErrConnectionFailed  = errors.New(ErrMsgConnectionFailed)
	ErrClientError       = errors.New(ErrMsgClientError)
	ErrMalformedResponse = errors.New(ErrMsgMalformedResponse)
)

// IsRetryable reports whether the failure class is worth retrying.
// Timeouts, connection resets, rate limits and server-side errors are
// transient; everything else is not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrServerError) || errors.Is(err, ErrConnectionFailed) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
