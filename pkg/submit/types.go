package submit

import (
	"bytes"

	"github.com/NautilusOSS/envoi-contracts/pkg/compose"
	"github.com/NautilusOSS/envoi-contracts/pkg/ledger"
)

// ReturnPrefix marks the log line carrying an ABI method's return value.
var ReturnPrefix = []byte{0x15, 0x1f, 0x7c, 0x75}

// Receipt is the confirmed outcome of one group member.
type Receipt struct {
	Index          int
	TxID           string
	Role           compose.Role
	Label          string
	ConfirmedRound uint64
	Logs           [][]byte
	Return         []byte
}

// SimulatedTransaction is the simulated outcome of one group member.
type SimulatedTransaction struct {
	Index  int
	TxID   string
	Role   compose.Role
	Label  string
	Logs   [][]byte
	Return []byte
}

// DryRunReport is the result of simulating a group.
type DryRunReport struct {
	Round          uint64
	FailureMessage string
	FailedAt       []uint64
	Transactions   []SimulatedTransaction
	Unnamed        ledger.Resources
}

// Failed reports whether the simulated group would be rejected.
func (r *DryRunReport) Failed() bool {
	return r != nil && r.FailureMessage != ""
}

// Err returns a *RejectedError for a failed simulation.
func (r *DryRunReport) Err() error {
	if !r.Failed() {
		return nil
	}
	return &RejectedError{Message: r.FailureMessage, FailedAt: r.FailedAt}
}

// Options select the submission mode.
type Options struct {
	Simulate bool
}

// Outcome is what Submit produced: receipts for a live send, or a dry-run
// report for a simulation.
type Outcome struct {
	Receipts []Receipt
	DryRun   *DryRunReport
}

// Simulated reports whether the outcome came from a simulation.
func (o Outcome) Simulated() bool {
	return o.DryRun != nil
}

// ReturnOf returns the ABI return value of the call built from operation op.
func (o Outcome) ReturnOf(group *compose.AtomicGroup, op int) []byte {
	index := group.CallIndex(op)
	if index < 0 {
		return nil
	}
	if o.DryRun != nil && index < len(o.DryRun.Transactions) {
		return o.DryRun.Transactions[index].Return
	}
	if index < len(o.Receipts) {
		return o.Receipts[index].Return
	}
	return nil
}

// ABIReturn extracts the return value from a call's logs: the last log line
// starting with ReturnPrefix, without the prefix.
func ABIReturn(logs [][]byte) ([]byte, bool) {
	for index := len(logs) - 1; index >= 0; index-- {
		if bytes.HasPrefix(logs[index], ReturnPrefix) {
			return append([]byte(nil), logs[index][len(ReturnPrefix):]...), true
		}
	}
	return nil, false
}

func abiReturnOrNil(logs [][]byte) []byte {
	value, _ := ABIReturn(logs)
	return value
}
