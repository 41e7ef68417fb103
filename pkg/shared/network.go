package shared

import (
	"fmt"
	"strings"
)

const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

const (
	mainnetAlgodURL   = "https://mainnet-api.voi.nodely.dev"
	mainnetIndexerURL = "https://mainnet-idx.voi.nodely.dev"
	testnetAlgodURL   = "https://testnet-api.voi.nodely.io"
	testnetIndexerURL = "https://testnet-idx.voi.nodely.io"
)

// NormalizeNetwork performs the requested operation.
func NormalizeNetwork(network string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(network))
	if normalized == "" {
		return NetworkTestnet, nil
	}

	switch normalized {
	case NetworkMainnet, NetworkTestnet:
		return normalized, nil
	default:
		return "", fmt.Errorf("unsupported network %q", network)
	}
}

// DefaultAlgodURL returns the public algod endpoint of a normalized network.
func DefaultAlgodURL(network string) string {
	if network == NetworkMainnet {
		return mainnetAlgodURL
	}
	return testnetAlgodURL
}

// DefaultIndexerURL returns the public indexer endpoint of a normalized
// network.
func DefaultIndexerURL(network string) string {
	if network == NetworkMainnet {
		return mainnetIndexerURL
	}
	return testnetIndexerURL
}
