package vns

import (
	"context"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/NautilusOSS/envoi-contracts/pkg/compose"
	"github.com/NautilusOSS/envoi-contracts/pkg/contract"
	"github.com/NautilusOSS/envoi-contracts/pkg/namehash"
)

// Box name prefixes of the reservation contract.
const (
	reservationBoxPrefix = "rsvp_"
	accountBoxPrefix     = "addr_"
)

func reservationBoxes(node namehash.Node, account types.Address) compose.References {
	return compose.References{Boxes: []compose.BoxRef{
		{Name: append([]byte(reservationBoxPrefix), node[:]...)},
		{Name: append([]byte(accountBoxPrefix), account[:]...)},
	}}
}

// Reserve reserves a name for the signer.
func (c *Client) Reserve(ctx context.Context, request ReserveRequest) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}
	if c.signer == nil {
		return Result{}, invalid("signer", "a signer is required for writes")
	}
	node, err := c.Node(request.Name)
	if err != nil {
		return Result{}, err
	}
	encoded, err := contract.FixedBytes(request.Name, contract.NameWidth)
	if err != nil {
		return Result{}, err
	}
	return c.invoke(ctx, c.rsvp, plan{fee: ReservationWriteFee}, contract.Call{
		Method:     "reserve",
		Args:       []any{node, encoded, ReservedLength(request.Name)},
		Payment:    request.Payment,
		References: reservationBoxes(node, c.signer.Address()),
	})
}

// Release drops the signer's reservation of a name.
func (c *Client) Release(ctx context.Context, request ReleaseRequest) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}
	if c.signer == nil {
		return Result{}, invalid("signer", "a signer is required for writes")
	}
	node, err := c.Node(request.Name)
	if err != nil {
		return Result{}, err
	}
	return c.invoke(ctx, c.rsvp, plan{fee: ReservationWriteFee}, contract.Call{
		Method:     "release",
		Args:       []any{node},
		References: reservationBoxes(node, c.signer.Address()),
	})
}

// AdminReserve reserves a name for another owner. Only the contract admin
// may call it.
func (c *Client) AdminReserve(ctx context.Context, request AdminReserveRequest) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}
	node, err := c.Node(request.Name)
	if err != nil {
		return Result{}, err
	}
	encoded, err := contract.FixedBytes(request.Name, contract.NameWidth)
	if err != nil {
		return Result{}, err
	}
	return c.invoke(ctx, c.rsvp, plan{fee: ReservationWriteFee}, contract.Call{
		Method:     "admin_reserve",
		Args:       []any{request.Owner, node, encoded, ReservedLength(request.Name), request.Price},
		References: reservationBoxes(node, request.Owner),
	})
}

// ReservationOwner returns who reserved a name, or the zero address.
func (c *Client) ReservationOwner(ctx context.Context, name string) (types.Address, error) {
	value, err := c.nodeView(ctx, c.rsvp, "reservation_owner", name)
	if err != nil {
		return types.Address{}, err
	}
	return contract.DecodeAddress(value)
}

// ReservationPrice returns the price recorded for a reservation.
func (c *Client) ReservationPrice(ctx context.Context, name string) (uint64, error) {
	value, err := c.nodeView(ctx, c.rsvp, "reservation_price", name)
	if err != nil {
		return 0, err
	}
	return contract.DecodeUint64(value)
}

// ReservationName returns the name stored with a reservation.
func (c *Client) ReservationName(ctx context.Context, name string) (string, error) {
	value, err := c.nodeView(ctx, c.rsvp, "reservation_name", name)
	if err != nil {
		return "", err
	}
	return contract.DecodeFixedString(value, contract.NameWidth)
}

// ReservationLength returns the length recorded for a reservation.
func (c *Client) ReservationLength(ctx context.Context, name string) (uint64, error) {
	value, err := c.nodeView(ctx, c.rsvp, "reservation_length", name)
	if err != nil {
		return 0, err
	}
	return contract.DecodeUint64(value)
}

// AccountNode returns the node an account holds a reservation for.
func (c *Client) AccountNode(ctx context.Context, account types.Address) (namehash.Node, error) {
	if err := requireApp(c.rsvp); err != nil {
		return namehash.Node{}, err
	}
	value, err := c.view(ctx, c.rsvp, contract.Call{Method: "account_node", Args: []any{account}})
	if err != nil {
		return namehash.Node{}, err
	}
	return contract.DecodeNode(value)
}
