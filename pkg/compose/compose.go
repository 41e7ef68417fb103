package compose

import (
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// nopSelector is the ABI selector of nop()void.
var nopSelector = []byte{0x58, 0x75, 0x9f, 0xa2}

// Options configure a composition.
type Options struct {
	Params types.SuggestedParams
	// Sender signs the beacon. Defaults to the first operation's sender.
	Sender types.Address
	// Fee is the anchor's own fee. The anchor also pays the minimum fee of
	// every other member.
	Fee uint64
	// MaxFee rejects groups whose pooled fee would exceed it.
	MaxFee uint64
	// Beacon appends a nop() call to this application and uses it as the
	// anchor.
	Beacon uint64
	// ResourceSharing moves every member's references onto the anchor.
	ResourceSharing bool
	Note            []byte
}

// Compose builds an atomic group from ops. On failure it returns a
// *CompositionError and no group.
func Compose(ops []OperationDescriptor, options Options) (*AtomicGroup, error) {
	if len(ops) == 0 {
		return nil, compositionError(ReasonEmpty, -1, "no operations")
	}
	if len(options.Params.GenesisHash) != len(types.Digest{}) {
		return nil, compositionError(ReasonMissingField, -1, "suggested params carry no genesis hash")
	}

	minFee := options.Params.MinFee
	if minFee == 0 {
		minFee = DefaultMinFee
	}

	size := len(ops)
	for _, op := range ops {
		if op.Payment > 0 {
			size++
		}
	}
	if options.Beacon != 0 {
		size++
	}
	if size > MaxGroupSize {
		return nil, compositionError(ReasonGroupSize, -1, "group of %d exceeds %d transactions", size, MaxGroupSize)
	}

	txns := make([]types.Transaction, 0, size)
	members := make([]Member, 0, size)
	minimums := make([]uint64, 0, size)
	var union References

	for index, op := range ops {
		if err := validateDescriptor(index, op); err != nil {
			return nil, err
		}

		if op.Payment > 0 {
			txns = append(txns, paymentTxn(op.Txn.Sender, op.Receiver(), op.Payment, options.Params))
			members = append(members, Member{Role: RolePayment, Operation: index})
			minimums = append(minimums, minFee)
		}

		call := cloneTxn(op.Txn)
		applyParams(&call, options.Params)
		call.Fee = 0
		call.Group = types.Digest{}

		refs := op.References.pinned(op.AppID())
		if options.ResourceSharing {
			union = union.Merge(refs)
		} else if err := placeReferences(&call, refs); err != nil {
			err.Operation = index
			return nil, err
		}

		txns = append(txns, call)
		members = append(members, Member{Role: RoleCall, Operation: index})
		minimums = append(minimums, maxUint(minFee, op.MinFee))
	}

	anchor := -1
	if options.Beacon != 0 {
		sender := options.Sender
		if sender == (types.Address{}) {
			sender = ops[0].Txn.Sender
		}
		txns = append(txns, beaconTxn(sender, options.Beacon, options.Params))
		members = append(members, Member{Role: RoleBeacon, Operation: -1})
		minimums = append(minimums, minFee)
		anchor = len(txns) - 1
	} else {
		for index := len(members) - 1; index >= 0; index-- {
			if members[index].Role == RoleCall {
				anchor = index
				break
			}
		}
	}

	if options.ResourceSharing && !union.isEmpty() {
		if err := placeReferences(&txns[anchor], union); err != nil {
			return nil, err
		}
	}

	fee := maxUint(options.Fee, minimums[anchor])
	for index, minimum := range minimums {
		if index != anchor {
			fee += minimum
		}
	}
	if options.MaxFee > 0 && fee > options.MaxFee {
		return nil, compositionError(ReasonFeeLimit, -1, "pooled fee %d exceeds limit %d", fee, options.MaxFee)
	}
	txns[anchor].Fee = types.MicroAlgos(fee)
	if len(options.Note) > 0 {
		txns[anchor].Note = append([]byte(nil), options.Note...)
	}

	group := &AtomicGroup{
		Operations:  append([]OperationDescriptor(nil), ops...),
		Members:     members,
		Fee:         fee,
		AnchorIndex: anchor,
		References:  union,
	}

	if len(txns) > 1 {
		groupID, err := crypto.ComputeGroupID(txns)
		if err != nil {
			return nil, &CompositionError{Reason: ReasonEncoding, Operation: -1, Message: "failed to compute group ID", Err: err}
		}
		for index := range txns {
			txns[index].Group = groupID
		}
		group.GroupID = groupID
	}
	group.Transactions = txns

	return group, nil
}

func validateDescriptor(index int, op OperationDescriptor) *CompositionError {
	if op.Txn.Type != types.ApplicationCallTx {
		return compositionError(ReasonMissingField, index, "transaction type %q is not an application call", op.Txn.Type)
	}
	if op.Txn.ApplicationID == 0 {
		return compositionError(ReasonMissingField, index, "application ID is required")
	}
	if op.Txn.Sender == (types.Address{}) {
		return compositionError(ReasonMissingField, index, "sender is required")
	}
	return nil
}

// placeReferences writes refs onto an application call, resolving box
// application indexes against the call's foreign apps.
func placeReferences(txn *types.Transaction, refs References) *CompositionError {
	self := uint64(txn.ApplicationID)
	merged := existingReferences(txn).Merge(refs)

	if len(merged.Accounts) > MaxAccounts {
		return compositionError(ReasonReferenceBudget, -1, "%d account references exceed %d", len(merged.Accounts), MaxAccounts)
	}
	if count := merged.Count(self); count > MaxReferences {
		return compositionError(ReasonReferenceBudget, -1, "%d references exceed %d", count, MaxReferences)
	}

	apps := make([]uint64, 0, len(merged.Apps))
	for _, app := range merged.Apps {
		if app != self && !containsUint(apps, app) {
			apps = append(apps, app)
		}
	}
	for _, box := range merged.Boxes {
		if box.AppID != 0 && box.AppID != self && !containsUint(apps, box.AppID) {
			apps = append(apps, box.AppID)
		}
	}

	boxes := make([]types.BoxReference, 0, len(merged.Boxes))
	for _, box := range merged.Boxes {
		index := uint64(0)
		if box.AppID != 0 && box.AppID != self {
			for position, app := range apps {
				if app == box.AppID {
					index = uint64(position + 1)
					break
				}
			}
		}
		boxes = append(boxes, types.BoxReference{ForeignAppIdx: index, Name: append([]byte(nil), box.Name...)})
	}

	txn.Accounts = merged.Accounts
	txn.ForeignApps = toAppIndexes(apps)
	txn.ForeignAssets = toAssetIndexes(merged.Assets)
	txn.BoxReferences = boxes
	return nil
}

// existingReferences reads the references already on txn.
func existingReferences(txn *types.Transaction) References {
	self := uint64(txn.ApplicationID)
	refs := References{Accounts: txn.Accounts}
	for _, app := range txn.ForeignApps {
		refs.Apps = append(refs.Apps, uint64(app))
	}
	for _, asset := range txn.ForeignAssets {
		refs.Assets = append(refs.Assets, uint64(asset))
	}
	for _, box := range txn.BoxReferences {
		app := self
		if box.ForeignAppIdx > 0 && int(box.ForeignAppIdx) <= len(txn.ForeignApps) {
			app = uint64(txn.ForeignApps[box.ForeignAppIdx-1])
		}
		refs.Boxes = append(refs.Boxes, BoxRef{AppID: app, Name: box.Name})
	}
	return refs
}

func paymentTxn(sender, receiver types.Address, amount uint64, params types.SuggestedParams) types.Transaction {
	txn := types.Transaction{
		Type: types.PaymentTx,
		PaymentTxnFields: types.PaymentTxnFields{
			Receiver: receiver,
			Amount:   types.MicroAlgos(amount),
		},
	}
	txn.Sender = sender
	applyParams(&txn, params)
	return txn
}

func beaconTxn(sender types.Address, appID uint64, params types.SuggestedParams) types.Transaction {
	txn := types.Transaction{Type: types.ApplicationCallTx}
	txn.Sender = sender
	txn.ApplicationID = types.AppIndex(appID)
	txn.OnCompletion = types.NoOpOC
	txn.ApplicationArgs = [][]byte{append([]byte(nil), nopSelector...)}
	applyParams(&txn, params)
	return txn
}

func applyParams(txn *types.Transaction, params types.SuggestedParams) {
	if txn.FirstValid == 0 {
		txn.FirstValid = params.FirstRoundValid
	}
	if txn.LastValid == 0 {
		txn.LastValid = params.LastRoundValid
	}
	if txn.GenesisID == "" {
		txn.GenesisID = params.GenesisID
	}
	if txn.GenesisHash == (types.Digest{}) {
		copy(txn.GenesisHash[:], params.GenesisHash)
	}
}

func cloneTxn(txn types.Transaction) types.Transaction {
	out := txn
	out.Note = append([]byte(nil), txn.Note...)
	out.ApplicationArgs = make([][]byte, len(txn.ApplicationArgs))
	for index, arg := range txn.ApplicationArgs {
		out.ApplicationArgs[index] = append([]byte(nil), arg...)
	}
	out.Accounts = append([]types.Address(nil), txn.Accounts...)
	out.ForeignApps = append([]types.AppIndex(nil), txn.ForeignApps...)
	out.ForeignAssets = append([]types.AssetIndex(nil), txn.ForeignAssets...)
	out.BoxReferences = append([]types.BoxReference(nil), txn.BoxReferences...)
	return out
}

func toAppIndexes(values []uint64) []types.AppIndex {
	if len(values) == 0 {
		return nil
	}
	out := make([]types.AppIndex, len(values))
	for index, value := range values {
		out[index] = types.AppIndex(value)
	}
	return out
}

func toAssetIndexes(values []uint64) []types.AssetIndex {
	if len(values) == 0 {
		return nil
	}
	out := make([]types.AssetIndex, len(values))
	for index, value := range values {
		out[index] = types.AssetIndex(value)
	}
	return out
}

func maxUint(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// String summarizes the group for logs.
func (g *AtomicGroup) String() string {
	return fmt.Sprintf("group(%d txns, fee %d, anchor %d)", len(g.Transactions), g.Fee, g.AnchorIndex)
}
