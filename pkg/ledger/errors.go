package ledger

import (
	"fmt"
	"strings"
)

// TimeoutError reports transactions still pending when the wait window
// closed or the context ended.
type TimeoutError struct {
	Pending   []string
	LastRound uint64
	Err       error
}

func (e *TimeoutError) Error() string {
	if e == nil {
		return "confirmation timed out"
	}
	message := fmt.Sprintf("confirmation timed out at round %d with %d pending: %s", e.LastRound, len(e.Pending), strings.Join(e.Pending, ","))
	if e.Err != nil {
		message = fmt.Sprintf("%s: %v", message, e.Err)
	}
	return message
}

func (e *TimeoutError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PoolError reports a transaction the node dropped from its pool.
type PoolError struct {
	TxID    string
	Message string
}

func (e *PoolError) Error() string {
	if e == nil {
		return "transaction rejected"
	}
	return fmt.Sprintf("transaction %s rejected: %s", e.TxID, e.Message)
}
