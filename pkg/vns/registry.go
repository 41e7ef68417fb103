package vns

import (
	"context"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/NautilusOSS/envoi-contracts/pkg/contract"
	"github.com/NautilusOSS/envoi-contracts/pkg/namehash"
)

// OwnerOf returns the registry owner of name. Unowned names return the zero
// address.
func (c *Client) OwnerOf(ctx context.Context, name string) (types.Address, error) {
	value, err := c.nodeView(ctx, c.registry, "ownerOf", name)
	if err != nil {
		return types.Address{}, err
	}
	return contract.DecodeAddress(value)
}

// Resolver returns the resolver application of name.
func (c *Client) Resolver(ctx context.Context, name string) (uint64, error) {
	value, err := c.nodeView(ctx, c.registry, "resolver", name)
	if err != nil {
		return 0, err
	}
	return contract.DecodeUint64(value)
}

// TTL returns the time-to-live of name.
func (c *Client) TTL(ctx context.Context, name string) (uint64, error) {
	value, err := c.nodeView(ctx, c.registry, "ttl", name)
	if err != nil {
		return 0, err
	}
	return contract.DecodeUint64(value)
}

// RecordExists reports whether the registry holds a record for name.
func (c *Client) RecordExists(ctx context.Context, name string) (bool, error) {
	value, err := c.nodeView(ctx, c.registry, "recordExists", name)
	if err != nil {
		return false, err
	}
	return contract.DecodeBool(value)
}

// IsApprovedForAll reports whether operator may manage every name of owner.
func (c *Client) IsApprovedForAll(ctx context.Context, owner, operator types.Address) (bool, error) {
	if err := requireApp(c.registry); err != nil {
		return false, err
	}
	value, err := c.view(ctx, c.registry, contract.Call{Method: "isApprovedForAll", Args: []any{owner, operator}})
	if err != nil {
		return false, err
	}
	return contract.DecodeBool(value)
}

// SetResolver points name at a resolver application.
func (c *Client) SetResolver(ctx context.Context, request SetResolverRequest) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}
	node, err := c.Node(request.Name)
	if err != nil {
		return Result{}, err
	}
	return c.invoke(ctx, c.registry, plan{}, contract.Call{
		Method: "setResolver",
		Args:   []any{node, request.Resolver},
	})
}

// SetTTL sets the time-to-live of a name.
func (c *Client) SetTTL(ctx context.Context, request SetTTLRequest) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}
	node, err := c.Node(request.Name)
	if err != nil {
		return Result{}, err
	}
	return c.invoke(ctx, c.registry, plan{}, contract.Call{
		Method: "setTTL",
		Args:   []any{node, request.TTL},
	})
}

// SetOwner transfers a registry node.
func (c *Client) SetOwner(ctx context.Context, request SetOwnerRequest) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}
	node, err := c.Node(request.Name)
	if err != nil {
		return Result{}, err
	}
	return c.invoke(ctx, c.registry, plan{}, contract.Call{
		Method: "setOwner",
		Args:   []any{node, request.Owner},
	})
}

// SetRecord writes the owner, resolver and TTL of a node.
func (c *Client) SetRecord(ctx context.Context, request SetRecordRequest) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}
	node, err := c.Node(request.Name)
	if err != nil {
		return Result{}, err
	}
	return c.invoke(ctx, c.registry, plan{}, contract.Call{
		Method: "setRecord",
		Args:   []any{node, request.Owner, request.Resolver, request.TTL},
	})
}

// SetSubnodeOwner creates or transfers a subnode. The call returns the
// subnode, readable with Result.Return(0).
func (c *Client) SetSubnodeOwner(ctx context.Context, request SetSubnodeOwnerRequest) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}
	parent, err := c.Node(request.Parent)
	if err != nil {
		return Result{}, err
	}
	label, err := namehash.LabelHash(request.Label, c.digest)
	if err != nil {
		return Result{}, err
	}
	return c.invoke(ctx, c.registry, plan{}, contract.Call{
		Method:  "setSubnodeOwner",
		Args:    []any{parent, label, request.Owner},
		Payment: request.Payment,
	})
}

// SetApprovalForAll grants or revokes an operator.
func (c *Client) SetApprovalForAll(ctx context.Context, request SetApprovalForAllRequest) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}
	return c.invoke(ctx, c.registry, plan{}, contract.Call{
		Method: "setApprovalForAll",
		Args:   []any{request.Operator, request.Approved},
	})
}

// nodeView reads a method whose only argument is the node of name.
func (c *Client) nodeView(ctx context.Context, target *contract.Contract, method, name string) ([]byte, error) {
	if err := requireApp(target); err != nil {
		return nil, err
	}
	node, err := c.Node(name)
	if err != nil {
		return nil, err
	}
	return c.view(ctx, target, contract.Call{Method: method, Args: []any{node}})
}
