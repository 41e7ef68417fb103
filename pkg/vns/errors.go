package vns

import "fmt"

// ValidationError reports a request rejected before anything was built.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "invalid request"
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NotConfiguredError reports an operation whose contract has no
// application ID.
type NotConfiguredError struct {
	Contract string
}

func (e *NotConfiguredError) Error() string {
	if e == nil {
		return "contract not configured"
	}
	return fmt.Sprintf("%s application ID is not configured", e.Contract)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
