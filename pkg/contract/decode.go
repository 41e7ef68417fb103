package contract

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/NautilusOSS/envoi-contracts/pkg/namehash"
)

// DecodeAddress decodes an ABI address return value.
func DecodeAddress(value []byte) (types.Address, error) {
	var address types.Address
	if len(value) != len(address) {
		return address, fmt.Errorf("address return must be %d bytes, got %d", len(address), len(value))
	}
	copy(address[:], value)
	return address, nil
}

// DecodeUint64 decodes an ABI uint64 return value.
func DecodeUint64(value []byte) (uint64, error) {
	if len(value) != 8 {
		return 0, fmt.Errorf("uint64 return must be 8 bytes, got %d", len(value))
	}
	return binary.BigEndian.Uint64(value), nil
}

// DecodeUint256 decodes an ABI uint256 return value.
func DecodeUint256(value []byte) (*big.Int, error) {
	if len(value) != 32 {
		return nil, fmt.Errorf("uint256 return must be 32 bytes, got %d", len(value))
	}
	return new(big.Int).SetBytes(value), nil
}

// DecodeBool decodes an ABI bool return value.
func DecodeBool(value []byte) (bool, error) {
	if len(value) != 1 {
		return false, fmt.Errorf("bool return must be 1 byte, got %d", len(value))
	}
	return value[0]&0x80 != 0, nil
}

// DecodeNode decodes a byte[32] return value.
func DecodeNode(value []byte) (namehash.Node, error) {
	var node namehash.Node
	if len(value) != len(node) {
		return node, fmt.Errorf("byte[32] return must be 32 bytes, got %d", len(value))
	}
	copy(node[:], value)
	return node, nil
}

// DecodeFixedString decodes a zero-padded byte[N] return value.
func DecodeFixedString(value []byte, width int) (string, error) {
	if len(value) != width {
		return "", fmt.Errorf("byte[%d] return must be %d bytes, got %d", width, width, len(value))
	}
	return FixedString(value), nil
}
