package docs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"google.golang.org/api/googleapi"

	"github.com/gdocs-cli/gdocs/internal/google"
	"github.com/gdocs-cli/gdocs/internal/logging"
)

// Sentinel errors for the API error taxonomy. Callers match these with
// errors.Is; the wrapped error keeps the vendor detail.
var (
	// ErrNotFound is returned when a document, permission or file
	// doesn't exist or isn't visible to the account.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned when the account lacks access.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrRateLimited is returned when the API keeps rejecting calls
	// with 429 after retries are exhausted.
	ErrRateLimited = errors.New("rate limited")
)

// ValidationError reports malformed CLI input, such as a table index
// that doesn't exist in the document.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

const maxRetries = 3

// mapAPIError translates googleapi status codes into the error taxonomy.
func mapAPIError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}
	switch gerr.Code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %v", google.ErrReauthRequired, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return err
}

// isRetryable reports whether an API error is worth retrying: rate
// limits and transient server errors only.
func isRetryable(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	return gerr.Code == http.StatusTooManyRequests || gerr.Code >= 500
}

// withRetry executes an API call with bounded exponential backoff.
// Non-retryable failures stop immediately with a mapped error.
func withRetry[T any](ctx context.Context, operation string, call func() (T, error)) (T, error) {
	result, err := backoff.Retry(ctx,
		func() (T, error) {
			v, err := call()
			if err != nil && !isRetryable(err) {
				return v, backoff.Permanent(mapAPIError(err))
			}
			return v, err
		},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(maxRetries),
		backoff.WithNotify(func(err error, wait time.Duration) {
			slog.Debug("retrying after transient API error",
				logging.Operation(operation),
				slog.Duration("wait", wait),
				logging.Err(err))
		}),
	)
	if err != nil {
		return result, mapAPIError(err)
	}
	return result, nil
}
