package compose

import (
	"bytes"
	"sync/atomic"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

const (
	// MaxGroupSize is the largest atomic group the ledger accepts.
	MaxGroupSize = 16
	// MaxReferences bounds accounts, apps, assets and boxes on one call.
	MaxReferences = 8
	// MaxAccounts bounds the account references on one call.
	MaxAccounts = 4
	// DefaultMinFee is used when suggested params carry no minimum fee.
	DefaultMinFee uint64 = 1000
)

// BoxRef names a box of an application.
type BoxRef struct {
	AppID uint64
	Name  []byte
}

// References lists the resources a call touches.
type References struct {
	Accounts []types.Address
	Apps     []uint64
	Assets   []uint64
	Boxes    []BoxRef
}

// Count returns the number of reference slots used, including apps implied
// by box references.
func (r References) Count(self uint64) int {
	apps := map[uint64]struct{}{}
	for _, app := range r.Apps {
		if app != self {
			apps[app] = struct{}{}
		}
	}
	for _, box := range r.Boxes {
		if box.AppID != self && box.AppID != 0 {
			apps[box.AppID] = struct{}{}
		}
	}
	return len(r.Accounts) + len(apps) + len(r.Assets) + len(r.Boxes)
}

// Merge returns the de-duplicated union of r and other, keeping first-seen
// order.
func (r References) Merge(other References) References {
	out := References{
		Accounts: append([]types.Address(nil), r.Accounts...),
		Apps:     append([]uint64(nil), r.Apps...),
		Assets:   append([]uint64(nil), r.Assets...),
		Boxes:    append([]BoxRef(nil), r.Boxes...),
	}
	for _, account := range other.Accounts {
		if !containsAddress(out.Accounts, account) {
			out.Accounts = append(out.Accounts, account)
		}
	}
	for _, app := range other.Apps {
		if !containsUint(out.Apps, app) {
			out.Apps = append(out.Apps, app)
		}
	}
	for _, asset := range other.Assets {
		if !containsUint(out.Assets, asset) {
			out.Assets = append(out.Assets, asset)
		}
	}
	for _, box := range other.Boxes {
		if !containsBox(out.Boxes, box) {
			out.Boxes = append(out.Boxes, box)
		}
	}
	return out
}

// pinned returns r with boxes of the calling application (AppID 0) bound to
// appID, so they keep their meaning when moved onto another call.
func (r References) pinned(appID uint64) References {
	out := r
	out.Boxes = make([]BoxRef, len(r.Boxes))
	for index, box := range r.Boxes {
		if box.AppID == 0 {
			box.AppID = appID
		}
		out.Boxes[index] = box
	}
	return out
}

func (r References) isEmpty() bool {
	return len(r.Accounts) == 0 && len(r.Apps) == 0 && len(r.Assets) == 0 && len(r.Boxes) == 0
}

// OperationDescriptor is one unsigned application call plus what it needs
// from the group around it.
type OperationDescriptor struct {
	// Label names the operation in logs and reports.
	Label string
	// Txn is the unsigned application call.
	Txn types.Transaction
	// Payment is paid to PaymentReceiver immediately before the call when
	// non-zero.
	Payment uint64
	// PaymentReceiver defaults to the called application's address.
	PaymentReceiver types.Address
	// MinFee is this call's own minimum fee, covering any inner
	// transactions it issues.
	MinFee     uint64
	References References
}

// AppID returns the called application.
func (d OperationDescriptor) AppID() uint64 {
	return uint64(d.Txn.ApplicationID)
}

// Receiver returns the payment receiver for the descriptor.
func (d OperationDescriptor) Receiver() types.Address {
	if d.PaymentReceiver != (types.Address{}) {
		return d.PaymentReceiver
	}
	return crypto.GetApplicationAddress(d.AppID())
}

// Role tells what a group member is for.
type Role int

const (
	RoleCall Role = iota
	RolePayment
	RoleBeacon
)

func (r Role) String() string {
	switch r {
	case RolePayment:
		return "payment"
	case RoleBeacon:
		return "beacon"
	default:
		return "call"
	}
}

// Member describes one transaction of a group. Operation is the index of the
// descriptor it belongs to, or -1 for the beacon.
type Member struct {
	Role      Role
	Operation int
}

// AtomicGroup is a composed, unsigned transaction group. A group may be
// submitted live once.
type AtomicGroup struct {
	Transactions []types.Transaction
	Members      []Member
	Operations   []OperationDescriptor
	GroupID      types.Digest
	Fee          uint64
	AnchorIndex  int
	References   References

	consumed atomic.Bool
}

// Consume marks the group as submitted. It returns false when the group was
// already consumed.
func (g *AtomicGroup) Consume() bool {
	return g.consumed.CompareAndSwap(false, true)
}

// Consumed reports whether the group was submitted.
func (g *AtomicGroup) Consumed() bool {
	return g.consumed.Load()
}

// TxIDs returns the transaction IDs in group order.
func (g *AtomicGroup) TxIDs() []string {
	ids := make([]string, len(g.Transactions))
	for index, txn := range g.Transactions {
		ids[index] = crypto.GetTxID(txn)
	}
	return ids
}

// Senders returns the distinct senders in first-seen order.
func (g *AtomicGroup) Senders() []types.Address {
	senders := make([]types.Address, 0, 1)
	for _, txn := range g.Transactions {
		if !containsAddress(senders, txn.Sender) {
			senders = append(senders, txn.Sender)
		}
	}
	return senders
}

// CallIndex returns the group position of the call built from operation op,
// or -1.
func (g *AtomicGroup) CallIndex(op int) int {
	for index, member := range g.Members {
		if member.Role == RoleCall && member.Operation == op {
			return index
		}
	}
	return -1
}

func containsAddress(values []types.Address, value types.Address) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}

func containsUint(values []uint64, value uint64) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}

func containsBox(values []BoxRef, value BoxRef) bool {
	for _, candidate := range values {
		if candidate.AppID == value.AppID && bytes.Equal(candidate.Name, value.Name) {
			return true
		}
	}
	return false
}
