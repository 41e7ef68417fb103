package contract

import (
	"fmt"
	"math/big"

	"github.com/algorand/go-algorand-sdk/v2/abi"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/NautilusOSS/envoi-contracts/pkg/compose"
	"github.com/NautilusOSS/envoi-contracts/pkg/namehash"
)

// Contract is a proxy for one deployed application and the ABI methods it
// exposes.
type Contract struct {
	name    string
	appID   uint64
	methods map[string]abi.Method
}

// Call describes one method invocation.
type Call struct {
	Method     string
	Args       []any
	Payment    uint64
	MinFee     uint64
	References compose.References
	Note       []byte
}

// New creates a new Contract from ABI method signatures.
func New(name string, appID uint64, signatures ...string) (*Contract, error) {
	methods := make(map[string]abi.Method, len(signatures))
	for _, signature := range signatures {
		method, err := abi.MethodFromSignature(signature)
		if err != nil {
			return nil, fmt.Errorf("failed to parse method %q: %w", signature, err)
		}
		if _, exists := methods[method.Name]; exists {
			return nil, fmt.Errorf("duplicate method %q on %s", method.Name, name)
		}
		methods[method.Name] = method
	}
	return &Contract{name: name, appID: appID, methods: methods}, nil
}

// Name returns the contract name used in labels.
func (c *Contract) Name() string {
	return c.name
}

// AppID returns the application ID.
func (c *Contract) AppID() uint64 {
	return c.appID
}

// Address returns the application's escrow address.
func (c *Contract) Address() types.Address {
	return crypto.GetApplicationAddress(c.appID)
}

// Method returns the ABI method with the given name.
func (c *Contract) Method(name string) (abi.Method, error) {
	method, ok := c.methods[name]
	if !ok {
		return abi.Method{}, fmt.Errorf("%s has no method %q", c.name, name)
	}
	return method, nil
}

// Selector returns the 4-byte selector of a method.
func (c *Contract) Selector(name string) ([]byte, error) {
	method, err := c.Method(name)
	if err != nil {
		return nil, err
	}
	return method.GetSelector(), nil
}

// Build encodes call as an unsigned application call from sender. It has no
// side effects.
func (c *Contract) Build(sender types.Address, params types.SuggestedParams, call Call) (compose.OperationDescriptor, error) {
	if c.appID == 0 {
		return compose.OperationDescriptor{}, fmt.Errorf("%s application ID is not configured", c.name)
	}
	method, err := c.Method(call.Method)
	if err != nil {
		return compose.OperationDescriptor{}, err
	}
	if len(call.Args) != len(method.Args) {
		return compose.OperationDescriptor{}, fmt.Errorf(
			"%s.%s takes %d arguments, got %d",
			c.name,
			method.Name,
			len(method.Args),
			len(call.Args),
		)
	}

	appArgs := make([][]byte, 0, len(call.Args)+1)
	appArgs = append(appArgs, method.GetSelector())
	for index, arg := range method.Args {
		argType, err := abi.TypeOf(arg.Type)
		if err != nil {
			return compose.OperationDescriptor{}, fmt.Errorf("failed to parse %s argument %d type %q: %w", method.Name, index, arg.Type, err)
		}
		encoded, err := argType.Encode(normalizeArg(call.Args[index]))
		if err != nil {
			return compose.OperationDescriptor{}, fmt.Errorf("failed to encode %s argument %d as %s: %w", method.Name, index, arg.Type, err)
		}
		appArgs = append(appArgs, encoded)
	}

	txn := types.Transaction{Type: types.ApplicationCallTx}
	txn.Sender = sender
	txn.FirstValid = params.FirstRoundValid
	txn.LastValid = params.LastRoundValid
	txn.GenesisID = params.GenesisID
	copy(txn.GenesisHash[:], params.GenesisHash)
	txn.ApplicationID = types.AppIndex(c.appID)
	txn.OnCompletion = types.NoOpOC
	txn.ApplicationArgs = appArgs
	if len(call.Note) > 0 {
		txn.Note = append([]byte(nil), call.Note...)
	}

	return compose.OperationDescriptor{
		Label:      c.name + "." + method.Name,
		Txn:        txn,
		Payment:    call.Payment,
		MinFee:     call.MinFee,
		References: call.References,
	}, nil
}

// normalizeArg converts domain values to the shapes the ABI encoder accepts.
func normalizeArg(value any) any {
	switch typed := value.(type) {
	case types.Address:
		return typed[:]
	case namehash.Node:
		return typed[:]
	case [32]byte:
		return typed[:]
	case int:
		if typed >= 0 {
			return uint64(typed)
		}
		return big.NewInt(int64(typed))
	default:
		return value
	}
}
