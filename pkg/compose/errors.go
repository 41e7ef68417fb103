package compose

import "fmt"

// Reason classifies a composition failure.
type Reason string

const (
	ReasonEmpty           Reason = "empty"
	ReasonMissingField    Reason = "missing_field"
	ReasonReferenceBudget Reason = "reference_budget"
	ReasonGroupSize       Reason = "group_size"
	ReasonFeeLimit        Reason = "fee_limit"
	ReasonEncoding        Reason = "encoding"
)

// CompositionError reports why a group could not be built. Operation is the
// descriptor index involved, or -1 when the failure concerns the whole group.
type CompositionError struct {
	Reason    Reason
	Operation int
	Message   string
	Err       error
}

func (e *CompositionError) Error() string {
	if e == nil {
		return "composition failed"
	}
	message := fmt.Sprintf("composition failed (%s)", e.Reason)
	if e.Operation >= 0 {
		message = fmt.Sprintf("%s at operation %d", message, e.Operation)
	}
	if e.Message != "" {
		message = fmt.Sprintf("%s: %s", message, e.Message)
	}
	if e.Err != nil {
		message = fmt.Sprintf("%s: %v", message, e.Err)
	}
	return message
}

func (e *CompositionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func compositionError(reason Reason, operation int, format string, args ...any) *CompositionError {
	return &CompositionError{
		Reason:    reason,
		Operation: operation,
		Message:   fmt.Sprintf(format, args...),
	}
}
