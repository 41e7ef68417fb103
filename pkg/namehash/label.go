package namehash

import (
	"math/big"
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/types"
)

// LabelKind identifies how a label is encoded before hashing.
type LabelKind int

const (
	LabelOpaque LabelKind = iota
	LabelNumeric
	LabelAddress
)

const (
	addressLength = 58
	wordSize      = 32
)

var uint256Mask = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// String returns the label kind name.
func (k LabelKind) String() string {
	switch k {
	case LabelAddress:
		return "address"
	case LabelNumeric:
		return "numeric"
	default:
		return "opaque"
	}
}

// ClassifyLabel reports the kind of label and its encoded bytes. Every input
// has a classification.
func ClassifyLabel(label string) (LabelKind, []byte) {
	if looksLikeAddress(label) {
		if address, err := types.DecodeAddress(label); err == nil {
			encoded := make([]byte, len(address))
			copy(encoded, address[:])
			return LabelAddress, encoded
		}
	}

	if isDecimal(label) {
		return LabelNumeric, encodeDecimal(label)
	}

	return LabelOpaque, []byte(label)
}

// EncodeLabel returns the byte form of a label used as hash input.
func EncodeLabel(label string) []byte {
	_, encoded := ClassifyLabel(label)
	return encoded
}

// EncodeUint256 encodes value as a 32-byte big-endian word. Values wider than
// 256 bits keep their low 256 bits.
func EncodeUint256(value *big.Int) []byte {
	word := make([]byte, wordSize)
	if value == nil {
		return word
	}
	truncated := new(big.Int).And(new(big.Int).Abs(value), uint256Mask)
	return truncated.FillBytes(word)
}

func looksLikeAddress(label string) bool {
	if len(label) != addressLength {
		return false
	}
	for index := 0; index < len(label); index++ {
		character := label[index]
		if (character >= 'A' && character <= 'Z') || (character >= '2' && character <= '7') {
			continue
		}
		return false
	}
	return true
}

func isDecimal(label string) bool {
	if label == "" {
		return false
	}
	return strings.IndexFunc(label, func(r rune) bool { return r < '0' || r > '9' }) < 0
}

func encodeDecimal(label string) []byte {
	value, ok := new(big.Int).SetString(label, 10)
	if !ok {
		return []byte(label)
	}
	return EncodeUint256(value)
}
