package vns

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/NautilusOSS/envoi-contracts/pkg/contract"
	"github.com/NautilusOSS/envoi-contracts/pkg/namehash"
)

// Text returns the text record key of name.
func (c *Client) Text(ctx context.Context, name, key string) (string, error) {
	if err := requireApp(c.resolver); err != nil {
		return "", err
	}
	if len(key) > contract.TextKeyWidth {
		return "", invalid("key", "key %q exceeds %d bytes", key, contract.TextKeyWidth)
	}
	node, err := c.Node(name)
	if err != nil {
		return "", err
	}
	encodedKey, err := contract.FixedBytes(key, contract.TextKeyWidth)
	if err != nil {
		return "", err
	}
	value, err := c.view(ctx, c.resolver, contract.Call{Method: "text", Args: []any{node, encodedKey}})
	if err != nil {
		return "", err
	}
	return contract.DecodeFixedString(value, contract.NameWidth)
}

// Name returns the name record stored at the node of name.
func (c *Client) Name(ctx context.Context, name string) (string, error) {
	value, err := c.nodeView(ctx, c.resolver, "name", name)
	if err != nil {
		return "", err
	}
	return contract.DecodeFixedString(value, contract.NameWidth)
}

// Addr returns the address record of name on the configured resolver.
func (c *Client) Addr(ctx context.Context, name string) (types.Address, error) {
	value, err := c.nodeView(ctx, c.resolver, "addr", name)
	if err != nil {
		return types.Address{}, err
	}
	return contract.DecodeAddress(value)
}

// ResolveAddr looks up the resolver of name in the registry and returns the
// address record it holds.
func (c *Client) ResolveAddr(ctx context.Context, name string) (types.Address, error) {
	resolverID, err := c.Resolver(ctx, name)
	if err != nil {
		return types.Address{}, err
	}
	if resolverID == 0 {
		return types.Address{}, fmt.Errorf("%s has no resolver", name)
	}
	target := c.resolver
	if resolverID != c.resolver.AppID() {
		target, err = contract.New("resolver", resolverID, resolverSignatures...)
		if err != nil {
			return types.Address{}, err
		}
	}
	value, err := c.nodeView(ctx, target, "addr", name)
	if err != nil {
		return types.Address{}, err
	}
	return contract.DecodeAddress(value)
}

// ReverseName returns the primary name of address, read from the name
// record of its reverse node.
func (c *Client) ReverseName(ctx context.Context, address types.Address) (string, error) {
	return c.Name(ctx, namehash.ReverseName(address.String()))
}

// SetText writes a text record.
func (c *Client) SetText(ctx context.Context, request SetTextRequest) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}
	node, err := c.Node(request.Name)
	if err != nil {
		return Result{}, err
	}
	key, err := contract.FixedBytes(request.Key, contract.TextKeyWidth)
	if err != nil {
		return Result{}, err
	}
	value, err := contract.FixedBytes(request.Value, contract.NameWidth)
	if err != nil {
		return Result{}, err
	}
	return c.invoke(ctx, c.resolver, plan{fee: ResolverWriteFee}, contract.Call{
		Method: "setText",
		Args:   []any{node, key, value},
	})
}

// SetName writes the name record of a node.
func (c *Client) SetName(ctx context.Context, request SetNameRequest) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}
	node, err := c.Node(request.Node)
	if err != nil {
		return Result{}, err
	}
	value, err := contract.FixedBytes(request.Value, contract.NameWidth)
	if err != nil {
		return Result{}, err
	}
	return c.invoke(ctx, c.resolver, plan{fee: ResolverWriteFee}, contract.Call{
		Method: "setName",
		Args:   []any{node, value},
	})
}

// SetPrimaryName writes name as the primary name of the signer.
func (c *Client) SetPrimaryName(ctx context.Context, name string) (Result, error) {
	if c.signer == nil {
		return Result{}, fmt.Errorf("a signer is required for writes")
	}
	return c.SetName(ctx, SetNameRequest{
		Node:  namehash.ReverseName(c.signer.Address().String()),
		Value: name,
	})
}

// DeleteName clears the name record of a node.
func (c *Client) DeleteName(ctx context.Context, name string) (Result, error) {
	if err := validName("name", name); err != nil {
		return Result{}, err
	}
	node, err := c.Node(name)
	if err != nil {
		return Result{}, err
	}
	return c.invoke(ctx, c.resolver, plan{fee: ResolverWriteFee}, contract.Call{
		Method: "deleteName",
		Args:   []any{node},
	})
}

// SetAddr writes the address record of a name.
func (c *Client) SetAddr(ctx context.Context, request SetAddrRequest) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}
	node, err := c.Node(request.Name)
	if err != nil {
		return Result{}, err
	}
	return c.invoke(ctx, c.resolver, plan{fee: ResolverWriteFee}, contract.Call{
		Method: "setAddr",
		Args:   []any{node, request.Address},
	})
}
