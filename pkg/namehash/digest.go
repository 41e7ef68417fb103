package namehash

import (
	"crypto/sha256"

	"github.com/ethereum/go-ethereum/crypto"
)

// Digest selects the 32-byte hash function used for labels and nodes.
type Digest int

const (
	// SHA256 is the digest used by the deployed envoi contracts.
	SHA256 Digest = iota
	// Keccak256 matches EIP-137 names and older deployments.
	Keccak256
)

// String returns the digest name.
func (d Digest) String() string {
	switch d {
	case SHA256:
		return "sha256"
	case Keccak256:
		return "keccak256"
	default:
		return "unknown"
	}
}

// ParseDigest maps a configuration value to a Digest.
func ParseDigest(value string) (Digest, error) {
	switch value {
	case "", "sha256", "sha-256":
		return SHA256, nil
	case "keccak256", "keccak-256", "keccak":
		return Keccak256, nil
	default:
		return 0, &UnsupportedDigestError{Name: value}
	}
}

func (d Digest) sum(data ...[]byte) ([]byte, error) {
	switch d {
	case SHA256:
		hasher := sha256.New()
		for _, chunk := range data {
			hasher.Write(chunk)
		}
		return hasher.Sum(nil), nil
	case Keccak256:
		return crypto.Keccak256(data...), nil
	default:
		return nil, &UnsupportedDigestError{Name: d.String()}
	}
}
