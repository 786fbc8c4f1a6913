package navcheck

import (
	"context"
	"errors"
)

// Failure kinds reported by a Browser. Implementations wrap these so callers
// can classify a failed case with errors.Is.
var (
	// ErrElementNotFound means a selector never matched within the command timeout.
	ErrElementNotFound = errors.New("element not found")
	// ErrURLMismatch means navigation did not reach the expected path.
	ErrURLMismatch = errors.New("url mismatch")
	// ErrContentMismatch means no element with the tag contained the expected text.
	ErrContentMismatch = errors.New("content mismatch")
)

// Kind classifies err as one of the failure kinds above.
// Returns "cancelled" when the run was cancelled, "navigation" for page load
// failures and "" for a nil error.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.Is(err, ErrElementNotFound):
		return "element-not-found"
	case errors.Is(err, ErrURLMismatch):
		return "url-mismatch"
	case errors.Is(err, ErrContentMismatch):
		return "content-mismatch"
	default:
		return "navigation"
	}
}
