package vns

import (
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/NautilusOSS/envoi-contracts/pkg/contract"
)

func validName(field, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid(field, "name is required")
	}
	if !utf8.ValidString(name) {
		return invalid(field, "name is not valid UTF-8")
	}
	for _, label := range strings.Split(name, ".") {
		if label == "" {
			return invalid(field, "name %q has an empty label", name)
		}
	}
	return nil
}

func validLabel(field, label string, width int) error {
	if label == "" {
		return invalid(field, "label is required")
	}
	if strings.Contains(label, ".") {
		return invalid(field, "label %q must not contain a dot", label)
	}
	if len(label) > width {
		return invalid(field, "label %q exceeds %d bytes", label, width)
	}
	return nil
}

func validAddress(field string, address types.Address) error {
	if address == (types.Address{}) {
		return invalid(field, "address is required")
	}
	return nil
}

// SetResolverRequest points a name at a resolver application.
type SetResolverRequest struct {
	Name     string
	Resolver uint64
}

// Validate checks the request.
func (r SetResolverRequest) Validate() error {
	if err := validName("name", r.Name); err != nil {
		return err
	}
	if r.Resolver == 0 {
		return invalid("resolver", "application ID is required")
	}
	return nil
}

// SetTTLRequest sets a name's time-to-live.
type SetTTLRequest struct {
	Name string
	TTL  uint64
}

// Validate checks the request.
func (r SetTTLRequest) Validate() error {
	return validName("name", r.Name)
}

// SetOwnerRequest transfers a registry node.
type SetOwnerRequest struct {
	Name  string
	Owner types.Address
}

// Validate checks the request.
func (r SetOwnerRequest) Validate() error {
	if err := validName("name", r.Name); err != nil {
		return err
	}
	return validAddress("owner", r.Owner)
}

// SetRecordRequest writes owner, resolver and TTL of a node at once.
type SetRecordRequest struct {
	Name     string
	Owner    types.Address
	Resolver uint64
	TTL      uint64
}

// Validate checks the request.
func (r SetRecordRequest) Validate() error {
	if err := validName("name", r.Name); err != nil {
		return err
	}
	return validAddress("owner", r.Owner)
}

// SetSubnodeOwnerRequest creates or transfers Label under Parent.
type SetSubnodeOwnerRequest struct {
	Parent string
	Label  string
	Owner  types.Address
	// Payment funds the new node's boxes when set.
	Payment uint64
}

// Validate checks the request.
func (r SetSubnodeOwnerRequest) Validate() error {
	if err := validName("parent", r.Parent); err != nil {
		return err
	}
	if err := validLabel("label", r.Label, contract.NameWidth); err != nil {
		return err
	}
	return validAddress("owner", r.Owner)
}

// SetApprovalForAllRequest grants or revokes an operator over all of the
// sender's names.
type SetApprovalForAllRequest struct {
	Operator types.Address
	Approved bool
}

// Validate checks the request.
func (r SetApprovalForAllRequest) Validate() error {
	return validAddress("operator", r.Operator)
}

// SetTextRequest writes a text record.
type SetTextRequest struct {
	Name  string
	Key   string
	Value string
}

// Validate checks the request.
func (r SetTextRequest) Validate() error {
	if err := validName("name", r.Name); err != nil {
		return err
	}
	if r.Key == "" {
		return invalid("key", "key is required")
	}
	if len(r.Key) > contract.TextKeyWidth {
		return invalid("key", "key %q exceeds %d bytes", r.Key, contract.TextKeyWidth)
	}
	if len(r.Value) > contract.NameWidth {
		return invalid("value", "value exceeds %d bytes", contract.NameWidth)
	}
	return nil
}

// SetNameRequest writes the name record of Node. Node is a full name whose
// node is written, usually "<address>.addr.reverse"; Value is the name
// stored there.
type SetNameRequest struct {
	Node  string
	Value string
}

// Validate checks the request.
func (r SetNameRequest) Validate() error {
	if err := validName("node", r.Node); err != nil {
		return err
	}
	if r.Value == "" {
		return invalid("value", "name is required")
	}
	if len(r.Value) > contract.NameWidth {
		return invalid("value", "name exceeds %d bytes", contract.NameWidth)
	}
	return nil
}

// SetAddrRequest writes the address record of a name.
type SetAddrRequest struct {
	Name    string
	Address types.Address
}

// Validate checks the request.
func (r SetAddrRequest) Validate() error {
	if err := validName("name", r.Name); err != nil {
		return err
	}
	return validAddress("address", r.Address)
}

// RegisterRequest registers Name under the client's top-level label.
type RegisterRequest struct {
	// Name is the second-level label, without the top-level suffix.
	Name  string
	Owner types.Address
	Years uint64
}

// Validate checks the request.
func (r RegisterRequest) Validate() error {
	if err := validLabel("name", r.Name, contract.ShortNameWidth); err != nil {
		return err
	}
	if err := validAddress("owner", r.Owner); err != nil {
		return err
	}
	if r.Years == 0 {
		return invalid("years", "at least one year is required")
	}
	return nil
}

// Duration returns the registration period in seconds.
func (r RegisterRequest) Duration() uint64 {
	return r.Years * secondsPerYear
}

// RenewRequest extends a registration.
type RenewRequest struct {
	Name  string
	Years uint64
}

// Validate checks the request.
func (r RenewRequest) Validate() error {
	if err := validLabel("name", r.Name, contract.ShortNameWidth); err != nil {
		return err
	}
	if r.Years == 0 {
		return invalid("years", "at least one year is required")
	}
	return nil
}

// ReclaimRequest restores registry ownership of a name to its token holder.
type ReclaimRequest struct {
	Name string
}

// Validate checks the request.
func (r ReclaimRequest) Validate() error {
	return validLabel("name", r.Name, contract.ShortNameWidth)
}

// ReverseRegisterRequest registers the reverse node of Owner.
type ReverseRegisterRequest struct {
	Owner types.Address
	// Duration is the registration period in seconds.
	Duration uint64
}

// Validate checks the request.
func (r ReverseRegisterRequest) Validate() error {
	return validAddress("owner", r.Owner)
}

// AppRegisterRequest registers a name derived from an application ID with
// the staking or collection registrar.
type AppRegisterRequest struct {
	AppID uint64
}

// Validate checks the request.
func (r AppRegisterRequest) Validate() error {
	if r.AppID == 0 {
		return invalid("app_id", "application ID is required")
	}
	return nil
}

// ReserveRequest reserves a name with the RSVP contract.
type ReserveRequest struct {
	Name string
	// Payment is attached to the reservation when set.
	Payment uint64
}

// Validate checks the request.
func (r ReserveRequest) Validate() error {
	if err := validName("name", r.Name); err != nil {
		return err
	}
	if len(r.Name) > contract.NameWidth {
		return invalid("name", "name exceeds %d bytes", contract.NameWidth)
	}
	return nil
}

// ReleaseRequest releases a reservation.
type ReleaseRequest struct {
	Name string
}

// Validate checks the request.
func (r ReleaseRequest) Validate() error {
	return validName("name", r.Name)
}

// AdminReserveRequest reserves a name on behalf of Owner.
type AdminReserveRequest struct {
	Name  string
	Owner types.Address
	Price uint64
}

// Validate checks the request.
func (r AdminReserveRequest) Validate() error {
	if err := (ReserveRequest{Name: r.Name}).Validate(); err != nil {
		return err
	}
	return validAddress("owner", r.Owner)
}

// ReservedLength is the length recorded for a reservation: the byte length
// of the name's first label.
func ReservedLength(name string) uint64 {
	label, _, _ := strings.Cut(name, ".")
	return uint64(len(label))
}

// ApproveRequest sets an ARC-200 allowance.
type ApproveRequest struct {
	Spender types.Address
	Amount  *big.Int
}

// Validate checks the request.
func (r ApproveRequest) Validate() error {
	if err := validAddress("spender", r.Spender); err != nil {
		return err
	}
	return validAmount(r.Amount)
}

// TransferRequest moves ARC-200 tokens.
type TransferRequest struct {
	Receiver types.Address
	Amount   *big.Int
}

// Validate checks the request.
func (r TransferRequest) Validate() error {
	if err := validAddress("receiver", r.Receiver); err != nil {
		return err
	}
	return validAmount(r.Amount)
}

func validAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return invalid("amount", "a non-negative amount is required")
	}
	if amount.BitLen() > 256 {
		return invalid("amount", "amount exceeds uint256")
	}
	return nil
}

// TransferNameRequest moves the ARC-72 token of a registered name. Name is
// the full name, including the top-level label.
type TransferNameRequest struct {
	Name string
	From types.Address
	To   types.Address
}

// Validate checks the request.
func (r TransferNameRequest) Validate() error {
	if err := validName("name", r.Name); err != nil {
		return err
	}
	if err := validAddress("from", r.From); err != nil {
		return err
	}
	return validAddress("to", r.To)
}
