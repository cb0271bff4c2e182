package client

import "errors"

// ErrorCategory is a stable label for error classification in metrics.
type ErrorCategory string

// Error category constants used as metric labels (upstreamCallsTotal).
const (
	ErrorCategoryTimeout      ErrorCategory = "timeout"
	ErrorCategoryUnavailable  ErrorCategory = "unavailable"
	ErrorCategoryNotFound     ErrorCategory = "not_found"
	ErrorCategoryUnauthorized ErrorCategory = "unauthorized"
	ErrorCategoryUpstream     ErrorCategory = "upstream"
	ErrorCategoryUnknown      ErrorCategory = "unknown"
)

// CategorizeError maps an error to a stable ErrorCategory for metrics.
func CategorizeError(err error) ErrorCategory {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return ErrorCategoryTimeout
	case errors.Is(err, ErrUnavailable):
		return ErrorCategoryUnavailable
	case errors.Is(err, ErrNotFound):
		return ErrorCategoryNotFound
	case errors.Is(err, ErrUnauthorized):
		return ErrorCategoryUnauthorized
	case errors.Is(err, ErrUpstream):
		return ErrorCategoryUpstream
	default:
		return ErrorCategoryUnknown
	}
}
