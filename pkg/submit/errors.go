package submit

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGroupConsumed is returned when a group is sent a second time.
var ErrGroupConsumed = errors.New("atomic group already submitted")

// SigningError reports a transaction that could not be signed. Nothing was
// broadcast.
type SigningError struct {
	Index  int
	Sender string
	Err    error
}

func (e *SigningError) Error() string {
	if e == nil {
		return "signing failed"
	}
	if e.Err == nil {
		return fmt.Sprintf("no signer for transaction %d sender %s", e.Index, e.Sender)
	}
	return fmt.Sprintf("failed to sign transaction %d from %s: %v", e.Index, e.Sender, e.Err)
}

func (e *SigningError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BroadcastError reports a group the node refused to accept. Message holds
// the node's diagnostic.
type BroadcastError struct {
	Message string
	Err     error
}

func (e *BroadcastError) Error() string {
	if e == nil {
		return "broadcast failed"
	}
	return fmt.Sprintf("broadcast failed: %s", e.Message)
}

func (e *BroadcastError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RejectedError reports a group the ledger or a contract refused.
type RejectedError struct {
	TxID     string
	Message  string
	FailedAt []uint64
	Err      error
}

func (e *RejectedError) Error() string {
	if e == nil {
		return "group rejected"
	}
	if e.TxID != "" {
		return fmt.Sprintf("transaction %s rejected: %s", e.TxID, e.Message)
	}
	return fmt.Sprintf("group rejected: %s", e.Message)
}

func (e *RejectedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ConfirmationTimeoutError reports a broadcast group whose outcome is
// unknown. The transactions may still confirm later.
type ConfirmationTimeoutError struct {
	Pending   []string
	LastRound uint64
	Err       error
}

func (e *ConfirmationTimeoutError) Error() string {
	if e == nil {
		return "confirmation timed out"
	}
	message := fmt.Sprintf("confirmation timed out at round %d, pending %s", e.LastRound, strings.Join(e.Pending, ","))
	if e.Err != nil {
		message = fmt.Sprintf("%s: %v", message, e.Err)
	}
	return message
}

func (e *ConfirmationTimeoutError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

var logicRejectionMarkers = []string{
	"logic eval error",
	"rejected by logic",
	"rejected by ApprovalProgram",
	"assert failed",
}

func isLogicRejection(message string) bool {
	for _, marker := range logicRejectionMarkers {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}
