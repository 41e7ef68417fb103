package ledger

import (
	"context"

	"github.com/algorand/go-algorand-sdk/v2/types"
)

// Client is the node surface used to submit and simulate groups.
type Client interface {
	SuggestedParams(ctx context.Context) (types.SuggestedParams, error)
	SendRawTransaction(ctx context.Context, raw []byte) (string, error)
	PendingTransaction(ctx context.Context, txID string) (PendingTransaction, error)
	Status(ctx context.Context) (uint64, error)
	StatusAfterBlock(ctx context.Context, round uint64) (uint64, error)
	Simulate(ctx context.Context, request SimulateRequest) (SimulateResult, error)
}

// PendingTransaction is the node's view of a submitted transaction.
type PendingTransaction struct {
	ConfirmedRound uint64
	PoolError      string
	Logs           [][]byte
}

// SimulateRequest carries one group for simulation.
type SimulateRequest struct {
	Transactions          []types.SignedTxn
	AllowEmptySignatures  bool
	AllowUnnamedResources bool
}

// SimulateResult reports the outcome of a simulated group.
type SimulateResult struct {
	LastRound      uint64
	FailureMessage string
	FailedAt       []uint64
	Transactions   []SimulatedTransaction
	// Unnamed lists resources the group used without naming them. Only
	// populated when unnamed resources were allowed.
	Unnamed Resources
}

// Resources lists accounts, applications, assets and boxes.
type Resources struct {
	Accounts     []types.Address
	Apps         []uint64
	Assets       []uint64
	Boxes        []BoxResource
	ExtraBoxRefs uint64
}

// BoxResource names one application box.
type BoxResource struct {
	App  uint64
	Name []byte
}

// Empty reports whether no resource is listed.
func (r Resources) Empty() bool {
	return len(r.Accounts) == 0 && len(r.Apps) == 0 && len(r.Assets) == 0 && len(r.Boxes) == 0 && r.ExtraBoxRefs == 0
}

// SimulatedTransaction holds the logs emitted by one simulated transaction.
type SimulatedTransaction struct {
	Logs [][]byte
}

// Failed reports whether the simulation failed.
func (r SimulateResult) Failed() bool {
	return r.FailureMessage != ""
}
