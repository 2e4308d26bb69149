package imagine

import (
	"context"
	"errors"
	"strings"
)

// Error codes attached to *Error by this package.
const (
	CodeUnknownModel           = "unknown_model"
	CodeRouteRejected          = "route_rejected"
	CodePlaceholderUnavailable = "placeholder_unavailable"
)

type Error struct {
	Provider  string
	Code      string
	Status    int
	Message   string
	Retryable bool
	Cause     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Provider != "" && e.Message != "" {
		return e.Provider + ": " + e.Message
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Provider != "" {
		return e.Provider + ": error"
	}
	return "error"
}

func (e *Error) Unwrap() error { return e.Cause }

func IsUnknownModel(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeUnknownModel
}

func IsPlaceholderUnavailable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodePlaceholderUnavailable
}

// IsRouteRejection reports whether err looks like the selected provider
// refusing to serve the requested model/operation pair. Inference routers do
// not expose a structured code for this condition, so the check falls back to
// a message heuristic; keep every matching rule here so it can be swapped
// without touching orchestration.
func IsRouteRejection(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) && e.Code == CodeRouteRejected {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not allowed") || strings.Contains(msg, "route")
}

func IsRateLimited(err error) bool {
	var e *Error
	return errors.As(err, &e) && (e.Status == 429 || e.Code == "rate_limited")
}

func IsAuth(err error) bool {
	var e *Error
	return errors.As(err, &e) && (e.Status == 401 || e.Status == 403 || e.Code == "unauthorized")
}

func IsTimeout(err error) bool {
	var e *Error
	if errors.As(err, &e) && e.Code == "timeout" {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func IsCanceled(err error) bool {
	var e *Error
	if errors.As(err, &e) && e.Code == "canceled" {
		return true
	}
	return errors.Is(err, context.Canceled)
}
