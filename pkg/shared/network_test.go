package shared

import (
	"testing"
)

func TestNormalizeNetworkMainnet(t *testing.T) {
	result, err := NormalizeNetwork("mainnet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != NetworkMainnet {
		t.Fatalf("expected %q, got %q", NetworkMainnet, result)
	}
}

func TestNormalizeNetworkTestnet(t *testing.T) {
	result, err := NormalizeNetwork("testnet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != NetworkTestnet {
		t.Fatalf("expected %q, got %q", NetworkTestnet, result)
	}
}

func TestNormalizeNetworkCaseInsensitive(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"MAINNET", NetworkMainnet},
		{"Mainnet", NetworkMainnet},
		{"TESTNET", NetworkTestnet},
		{"Testnet", NetworkTestnet},
		{"  mainnet  ", NetworkMainnet},
		{"  testnet  ", NetworkTestnet},
	}

	for _, tc := range cases {
		result, err := NormalizeNetwork(tc.input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.input, err)
		}
		if result != tc.expected {
			t.Fatalf("expected %q for input %q, got %q", tc.expected, tc.input, result)
		}
	}
}

func TestNormalizeNetworkEmpty(t *testing.T) {
	result, err := NormalizeNetwork("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != NetworkTestnet {
		t.Fatalf("expected %q for empty input, got %q", NetworkTestnet, result)
	}
}

func TestNormalizeNetworkWhitespaceOnly(t *testing.T) {
	result, err := NormalizeNetwork("   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != NetworkTestnet {
		t.Fatalf("expected %q for whitespace input, got %q", NetworkTestnet, result)
	}
}

func TestNormalizeNetworkUnsupported(t *testing.T) {
	_, err := NormalizeNetwork("devnet")
	if err == nil {
		t.Fatal("expected error for unsupported network")
	}
}

func TestDefaultEndpoints(t *testing.T) {
	if DefaultAlgodURL(NetworkMainnet) != "https://mainnet-api.voi.nodely.dev" {
		t.Fatalf("unexpected mainnet algod URL %s", DefaultAlgodURL(NetworkMainnet))
	}
	if DefaultAlgodURL(NetworkTestnet) != "https://testnet-api.voi.nodely.io" {
		t.Fatalf("unexpected testnet algod URL %s", DefaultAlgodURL(NetworkTestnet))
	}
	if DefaultIndexerURL(NetworkMainnet) != "https://mainnet-idx.voi.nodely.dev" {
		t.Fatalf("unexpected mainnet indexer URL %s", DefaultIndexerURL(NetworkMainnet))
	}
	if DefaultIndexerURL("") != "https://testnet-idx.voi.nodely.io" {
		t.Fatalf("unexpected default indexer URL %s", DefaultIndexerURL(""))
	}
}
