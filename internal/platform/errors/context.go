package errors

import (
	"context"
	stderrs "errors"
)

// FromContext classifies an upstream call that ended with a context error
// both deadline and cancellation surface as Unavailable, what names the upstream
func FromContext(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case stderrs.Is(err, context.DeadlineExceeded):
		return Wrapf(err, ErrorCodeUnavailable, "%s timed out", what)
	case stderrs.Is(err, context.Canceled):
		return Wrapf(err, ErrorCodeUnavailable, "%s canceled", what)
	}
	return Wrapf(err, ErrorCodeUnavailable, "%s failed", what)
}
