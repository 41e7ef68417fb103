package vns

import (
	"context"
	"math/big"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/NautilusOSS/envoi-contracts/pkg/contract"
)

// Approve sets the allowance of a spender over the signer's payment tokens.
func (c *Client) Approve(ctx context.Context, request ApproveRequest) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}
	return c.invoke(ctx, c.token, plan{}, contract.Call{
		Method:  "arc200_approve",
		Args:    []any{request.Spender, request.Amount},
		Payment: ApprovePayment,
	})
}

// Transfer sends payment tokens from the signer.
func (c *Client) Transfer(ctx context.Context, request TransferRequest) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}
	return c.invoke(ctx, c.token, plan{}, contract.Call{
		Method:  "arc200_transfer",
		Args:    []any{request.Receiver, request.Amount},
		Payment: ApprovePayment,
	})
}

// BalanceOf returns the payment token balance of owner.
func (c *Client) BalanceOf(ctx context.Context, owner types.Address) (*big.Int, error) {
	if err := requireApp(c.token); err != nil {
		return nil, err
	}
	value, err := c.view(ctx, c.token, contract.Call{Method: "arc200_balanceOf", Args: []any{owner}})
	if err != nil {
		return nil, err
	}
	return contract.DecodeUint256(value)
}

// Allowance returns how many of owner's tokens spender may move.
func (c *Client) Allowance(ctx context.Context, owner, spender types.Address) (*big.Int, error) {
	if err := requireApp(c.token); err != nil {
		return nil, err
	}
	value, err := c.view(ctx, c.token, contract.Call{Method: "arc200_allowance", Args: []any{owner, spender}})
	if err != nil {
		return nil, err
	}
	return contract.DecodeUint256(value)
}
