package vns

import (
	"context"
	"math/big"
	"time"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/NautilusOSS/envoi-contracts/pkg/compose"
	"github.com/NautilusOSS/envoi-contracts/pkg/contract"
	"github.com/NautilusOSS/envoi-contracts/pkg/namehash"
)

// Register registers a second-level name. The group approves the registrar
// to spend the payment token, registers the name and writes its name record
// on the resolver, anchored by a registrar beacon.
func (c *Client) Register(ctx context.Context, request RegisterRequest) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}
	for _, target := range []*contract.Contract{c.token, c.registrar, c.resolver} {
		if err := requireApp(target); err != nil {
			return Result{}, err
		}
	}

	fullName := c.FullName(request.Name)
	node, err := c.Node(fullName)
	if err != nil {
		return Result{}, err
	}
	label, err := contract.FixedBytes(request.Name, contract.ShortNameWidth)
	if err != nil {
		return Result{}, err
	}
	record, err := contract.FixedBytes(fullName, contract.NameWidth)
	if err != nil {
		return Result{}, invalid("name", "%s", err.Error())
	}
	duration := new(big.Int).SetUint64(request.Duration())

	p := plan{fee: RegisterFee, beacon: c.registrar.AppID(), sharing: true}
	return c.write(ctx, p, func(sender types.Address, params types.SuggestedParams) ([]compose.OperationDescriptor, error) {
		return buildAll(sender, params,
			step{c.token, contract.Call{
				Method:  "arc200_approve",
				Args:    []any{c.registrar.Address(), new(big.Int).SetUint64(RegisterAllowance)},
				Payment: ApprovePayment,
			}},
			step{c.registrar, contract.Call{
				Method:  "register",
				Args:    []any{label, request.Owner, duration},
				Payment: RegisterPayment,
			}},
			step{c.resolver, contract.Call{
				Method: "setName",
				Args:   []any{node, record},
			}},
		)
	})
}

// Renew extends the registration of a second-level name.
func (c *Client) Renew(ctx context.Context, request RenewRequest) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}
	duration := new(big.Int).SetUint64(request.Years * secondsPerYear)
	return c.invoke(ctx, c.registrar, plan{fee: RegistrarWriteFee}, contract.Call{
		Method:  "renew",
		Args:    []any{request.Name, duration},
		Payment: RenewPayment,
	})
}

// Reclaim sets the registry owner of a name to the holder of its token.
func (c *Client) Reclaim(ctx context.Context, request ReclaimRequest) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}
	label, err := contract.FixedBytes(request.Name, contract.ShortNameWidth)
	if err != nil {
		return Result{}, err
	}
	return c.invoke(ctx, c.registrar, plan{fee: RegistrarWriteFee}, contract.Call{
		Method: "reclaim",
		Args:   []any{label},
	})
}

// Expiration returns when the registration of a full name expires.
func (c *Client) Expiration(ctx context.Context, name string) (time.Time, error) {
	value, err := c.tokenView(ctx, c.registrar, "expiration", name)
	if err != nil {
		return time.Time{}, err
	}
	seconds, err := contract.DecodeUint256(value)
	if err != nil {
		return time.Time{}, err
	}
	if !seconds.IsInt64() {
		return time.Time{}, invalid("expiration", "timestamp %s out of range", seconds)
	}
	return time.Unix(seconds.Int64(), 0).UTC(), nil
}

// IsExpired reports whether the registration of a full name has expired.
func (c *Client) IsExpired(ctx context.Context, name string) (bool, error) {
	value, err := c.tokenView(ctx, c.registrar, "is_expired", name)
	if err != nil {
		return false, err
	}
	return contract.DecodeBool(value)
}

// CheckName reports whether a second-level label is available.
func (c *Client) CheckName(ctx context.Context, label string) (bool, error) {
	value, err := c.labelView(ctx, c.registrar, contract.Call{Method: "check_name"}, label)
	if err != nil {
		return false, err
	}
	return contract.DecodeBool(value)
}

// NameLength returns the length the registrar prices a label by.
func (c *Client) NameLength(ctx context.Context, label string) (uint64, error) {
	value, err := c.labelView(ctx, c.registrar, contract.Call{Method: "get_length"}, label)
	if err != nil {
		return 0, err
	}
	return contract.DecodeUint64(value)
}

// Price returns the token price of registering label for years.
func (c *Client) Price(ctx context.Context, label string, years uint64) (uint64, error) {
	duration := new(big.Int).SetUint64(years * secondsPerYear)
	value, err := c.labelView(ctx, c.registrar, contract.Call{Method: "get_price", Args: []any{duration}}, label)
	if err != nil {
		return 0, err
	}
	return contract.DecodeUint64(value)
}

// TokenOwner returns the holder of the registrar token of a full name.
func (c *Client) TokenOwner(ctx context.Context, name string) (types.Address, error) {
	value, err := c.tokenView(ctx, c.registrar, "arc72_ownerOf", name)
	if err != nil {
		return types.Address{}, err
	}
	return contract.DecodeAddress(value)
}

// TransferName moves the registrar token of a name.
func (c *Client) TransferName(ctx context.Context, request TransferNameRequest) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}
	node, err := c.Node(request.Name)
	if err != nil {
		return Result{}, err
	}
	return c.invoke(ctx, c.registrar, plan{fee: RegistrarWriteFee}, contract.Call{
		Method: "arc72_transferFrom",
		Args:   []any{request.From, request.To, node.BigInt()},
	})
}

// ReverseRegister registers the reverse node of an address with the reverse
// registrar.
func (c *Client) ReverseRegister(ctx context.Context, request ReverseRegisterRequest) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}
	for _, target := range []*contract.Contract{c.token, c.reverse} {
		if err := requireApp(target); err != nil {
			return Result{}, err
		}
	}
	duration := new(big.Int).SetUint64(request.Duration)

	p := plan{fee: ReverseRegisterFee, beacon: c.reverse.AppID(), sharing: true}
	return c.write(ctx, p, func(sender types.Address, params types.SuggestedParams) ([]compose.OperationDescriptor, error) {
		return buildAll(sender, params,
			step{c.token, contract.Call{
				Method:  "arc200_approve",
				Args:    []any{c.reverse.Address(), new(big.Int).SetUint64(ReverseRegisterAllowance)},
				Payment: ApprovePayment,
			}},
			step{c.reverse, contract.Call{
				Method:  "register",
				Args:    []any{request.Owner[:], request.Owner, duration},
				Payment: RegisterPayment,
			}},
		)
	})
}

// StakingRegister registers the name of a staking contract with the staking
// registrar.
func (c *Client) StakingRegister(ctx context.Context, request AppRegisterRequest) (Result, error) {
	return c.appRegister(ctx, c.staking, request, StakingRegisterPayment)
}

// CollectionRegister registers the name of a collection with the collection
// registrar.
func (c *Client) CollectionRegister(ctx context.Context, request AppRegisterRequest) (Result, error) {
	return c.appRegister(ctx, c.collection, request, 0)
}

func (c *Client) appRegister(ctx context.Context, target *contract.Contract, request AppRegisterRequest, payment uint64) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}
	if c.signer == nil {
		return Result{}, invalid("signer", "a signer is required for writes")
	}
	label := namehash.EncodeUint256(new(big.Int).SetUint64(request.AppID))
	return c.invoke(ctx, target, plan{fee: SubRegistrarFee, sharing: true}, contract.Call{
		Method:     "register",
		Args:       []any{label, c.signer.Address(), uint64(0)},
		Payment:    payment,
		References: compose.References{Apps: []uint64{request.AppID}},
	})
}

// tokenView reads a method whose only argument is the token ID of a full
// name.
func (c *Client) tokenView(ctx context.Context, target *contract.Contract, method, name string) ([]byte, error) {
	if err := requireApp(target); err != nil {
		return nil, err
	}
	node, err := c.Node(name)
	if err != nil {
		return nil, err
	}
	return c.view(ctx, target, contract.Call{Method: method, Args: []any{node.BigInt()}})
}

// labelView reads a method whose first argument is a second-level label.
func (c *Client) labelView(ctx context.Context, target *contract.Contract, call contract.Call, label string) ([]byte, error) {
	if err := requireApp(target); err != nil {
		return nil, err
	}
	if err := validLabel("name", label, contract.ShortNameWidth); err != nil {
		return nil, err
	}
	encoded, err := contract.FixedBytes(label, contract.ShortNameWidth)
	if err != nil {
		return nil, err
	}
	call.Args = append([]any{encoded}, call.Args...)
	return c.view(ctx, target, call)
}

type step struct {
	target *contract.Contract
	call   contract.Call
}

func buildAll(sender types.Address, params types.SuggestedParams, steps ...step) ([]compose.OperationDescriptor, error) {
	ops := make([]compose.OperationDescriptor, 0, len(steps))
	for _, s := range steps {
		descriptor, err := s.target.Build(sender, params, s.call)
		if err != nil {
			return nil, err
		}
		ops = append(ops, descriptor)
	}
	return ops, nil
}
