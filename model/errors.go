package model

import "fmt"

// FetchError wraps any failure to retrieve or parse a drama's remote page:
// network error, timeout or parse failure. It is scoped to a single drama and
// retried on the next sweep, never fatal to a pass.
type FetchError struct {
	DramaID string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch drama %s: %v", e.DramaID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NotifyError wraps a delivery failure for a single user's report. It is
// logged and not retried within the same pass.
type NotifyError struct {
	UserID string
	Err    error
}

func (e *NotifyError) Error() string {
	return fmt.Sprintf("notify user %s: %v", e.UserID, e.Err)
}

func (e *NotifyError) Unwrap() error { return e.Err }

// ConfigurationError reports missing delivery credentials or similar startup
// misconfiguration. Fatal to the invocation, surfaced to the operator.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}
