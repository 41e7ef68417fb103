package namehash

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"
)

// Node is the 32-byte identifier of a name.
type Node [32]byte

// Root is the node of the empty name.
var Root Node

// Hex returns the lowercase hex form of the node.
func (n Node) Hex() string {
	return hex.EncodeToString(n[:])
}

// Bytes returns a copy of the node bytes.
func (n Node) Bytes() []byte {
	out := make([]byte, len(n))
	copy(out, n[:])
	return out
}

// BigInt returns the node as an unsigned 256-bit integer. The registrar uses
// this value as the token identifier of a name.
func (n Node) BigInt() *big.Int {
	return new(big.Int).SetBytes(n[:])
}

// IsRoot reports whether the node is the zero node.
func (n Node) IsRoot() bool {
	return n == Root
}

func (n Node) String() string {
	return n.Hex()
}

// NodeFromHex parses a 64-character hex string, with or without 0x prefix.
func NodeFromHex(value string) (Node, error) {
	var node Node
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "0x")
	decoded, err := hex.DecodeString(trimmed)
	if err != nil {
		return node, fmt.Errorf("failed to decode node hex: %w", err)
	}
	if len(decoded) != len(node) {
		return node, fmt.Errorf("node must be %d bytes, got %d", len(node), len(decoded))
	}
	copy(node[:], decoded)
	return node, nil
}

// Namehash returns the SHA-256 node of name.
func Namehash(name string) Node {
	node, _ := NamehashWith(name, SHA256)
	return node
}

// NamehashWith returns the node of name under the given digest. Labels are
// folded right to left and empty labels are skipped, so "a..voi" and ".voi."
// hash like "a.voi" and "voi".
func NamehashWith(name string, digest Digest) (Node, error) {
	node := Root
	if _, err := digest.sum(); err != nil {
		return node, err
	}
	if name == "" {
		return node, nil
	}

	labels := strings.Split(name, ".")
	for index := len(labels) - 1; index >= 0; index-- {
		label := labels[index]
		if label == "" {
			continue
		}
		labelHash, err := digest.sum(EncodeLabel(label))
		if err != nil {
			return Root, err
		}
		next, err := digest.sum(node[:], labelHash)
		if err != nil {
			return Root, err
		}
		copy(node[:], next)
	}

	return node, nil
}

// NamehashStrict behaves like NamehashWith but rejects names that are not
// valid UTF-8 or that contain empty labels.
func NamehashStrict(name string, digest Digest) (Node, error) {
	if !utf8.ValidString(name) {
		return Root, &InvalidNameError{Name: name, Reason: "not valid UTF-8"}
	}
	if name != "" {
		for _, label := range strings.Split(name, ".") {
			if label == "" {
				return Root, &InvalidNameError{Name: name, Reason: "empty label"}
			}
		}
	}
	return NamehashWith(name, digest)
}

// LabelHash returns the digest of a single encoded label, the value passed as
// the label argument of sub-node registry calls.
func LabelHash(label string, digest Digest) (Node, error) {
	var out Node
	sum, err := digest.sum(EncodeLabel(label))
	if err != nil {
		return out, err
	}
	copy(out[:], sum)
	return out, nil
}

// Subnode returns the node of label under parent.
func Subnode(parent Node, label string, digest Digest) (Node, error) {
	labelHash, err := LabelHash(label, digest)
	if err != nil {
		return Root, err
	}
	sum, err := digest.sum(parent[:], labelHash[:])
	if err != nil {
		return Root, err
	}
	var out Node
	copy(out[:], sum)
	return out, nil
}

// ReverseName returns the reverse-lookup name of an account address.
func ReverseName(address string) string {
	return address + ".addr.reverse"
}
