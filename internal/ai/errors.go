package ai

import (
	"errors"
	"fmt"
)

// Error taxonomy for calls to the AI gateway. Handlers map each class to a
// distinct user-facing message, so classification happens here rather than
// by inspecting status codes upstream.

var (
	// ErrNotConfigured means the gateway API key is missing. Fatal; the
	// client never attempts a network call in this state.
	ErrNotConfigured = errors.New("AI gateway API key is not configured")

	// ErrRateLimited corresponds to HTTP 429 from the gateway. The caller
	// may retry later; the client itself never retries.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrQuotaExceeded corresponds to HTTP 402: billing quota exhausted.
	ErrQuotaExceeded = errors.New("usage quota exceeded")
)

// TransportError covers network failures and non-2xx statuses other than
// the rate-limit and quota cases.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("AI gateway error: status %d", e.Status)
	}
	return fmt.Sprintf("AI gateway request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError means the gateway answered 200 but the payload was
// unusable: no message content, or content that does not parse as JSON after
// fence stripping. Distinct from TransportError so callers can offer a plain
// "try again" instead of pointing at configuration.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed AI response: %s: %v", e.Reason, e.Err)
	}
	return "malformed AI response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// IsMalformed reports whether err is a MalformedResponseError.
func IsMalformed(err error) bool {
	var malformed *MalformedResponseError
	return errors.As(err, &malformed)
}
