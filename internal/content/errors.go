package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/lingua/internal/llm"
)

// Cause classifies a generation failure.
type Cause int

const (
	// CauseNetwork covers transport failures, timeouts, cancellation, and
	// non-5xx refusals such as rate limiting.
	CauseNetwork Cause = iota + 1
	// CauseServer is a 5xx from the collaborator.
	CauseServer
	// CauseMalformedContent means a response arrived but held no usable
	// exercise set.
	CauseMalformedContent
)

func (c Cause) String() string {
	switch c {
	case CauseNetwork:
		return "network"
	case CauseServer:
		return "server"
	case CauseMalformedContent:
		return "malformed_content"
	default:
		return fmt.Sprintf("cause(%d)", int(c))
	}
}

// GenerationError is returned by Generate for any downstream failure. The
// cache is never written when it is returned, so retrying is safe.
type GenerationError struct {
	LessonID string
	Cause    Cause
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate lesson %s: %s: %v", e.LessonID, e.Cause, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// IsCause reports whether err is a GenerationError with the given cause.
func IsCause(err error, c Cause) bool {
	var gerr *GenerationError
	return errors.As(err, &gerr) && gerr.Cause == c
}

// classify maps a collaborator error onto a Cause.
func classify(err error) Cause {
	var (
		unavailable *llm.ErrProviderUnavailable
		rateLimit   *llm.ErrRateLimit
		truncated   *llm.ErrMaxTokensExceeded
		invalid     *llm.ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return CauseNetwork
	case errors.As(err, &unavailable):
		if unavailable.ServerSide() {
			return CauseServer
		}
		return CauseNetwork
	case errors.As(err, &rateLimit):
		return CauseNetwork
	case errors.As(err, &truncated), errors.As(err, &invalid):
		return CauseMalformedContent
	default:
		return CauseNetwork
	}
}
