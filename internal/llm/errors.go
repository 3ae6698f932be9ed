package llm

import (
	"fmt"
	"net/http"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the provider answered but the payload could
// not be used, e.g. no text block or a schema violation.
type ErrInvalidResponse struct {
	Text string
	Err  error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider could not be reached or
// answered with a non-success status. StatusCode is 0 for transport
// failures.
type ErrProviderUnavailable struct {
	StatusCode int
	Err        error
}

func (e *ErrProviderUnavailable) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("LLM provider unavailable (HTTP %d): %v", e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ServerSide reports whether the provider itself returned a 5xx.
func (e *ErrProviderUnavailable) ServerSide() bool { return e.StatusCode >= 500 }

// ErrMaxTokensExceeded indicates the response was cut off at MaxTokens.
type ErrMaxTokensExceeded struct {
	Text string
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// statusError classifies an HTTP status from a provider SDK error.
func statusError(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{StatusCode: status, Err: err}
}

// finish turns a truncated response into ErrMaxTokensExceeded. A cut-off
// payload can't hold a complete JSON document.
func finish(resp *Response) (*Response, error) {
	if resp.StopReason == "max_tokens" {
		return nil, &ErrMaxTokensExceeded{Text: resp.Text}
	}
	return resp, nil
}
