package shared

import (
	"crypto/ed25519"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/joho/godotenv"
)

// OperatorConfig holds the signing secret and node endpoints read from the
// environment.
type OperatorConfig struct {
	Network      string
	Mnemonic     string
	PrivateKey   string
	AlgodURL     string
	AlgodToken   string
	IndexerURL   string
	IndexerToken string
}

var dotenvLoadOnce sync.Once

// OperatorConfigFromEnv performs the requested operation.
func OperatorConfigFromEnv() (OperatorConfig, error) {
	loadDotEnvIfPresent()

	network := firstNonEmptyEnv("ENVOI_NETWORK", "NETWORK")
	normalized, err := NormalizeNetwork(network)
	if err != nil {
		return OperatorConfig{}, err
	}

	config := OperatorConfig{
		Network:      normalized,
		Mnemonic:     firstNonEmptyEnv("ENVOI_MNEMONIC", "MN"),
		PrivateKey:   firstNonEmptyEnv("ENVOI_PRIVATE_KEY", "PRIVATE_KEY"),
		AlgodURL:     firstNonEmptyEnv("ENVOI_ALGOD_URL", "ALGOD_SERVER"),
		AlgodToken:   firstNonEmptyEnv("ENVOI_ALGOD_TOKEN", "ALGOD_TOKEN"),
		IndexerURL:   firstNonEmptyEnv("ENVOI_INDEXER_URL", "INDEXER_SERVER"),
		IndexerToken: firstNonEmptyEnv("ENVOI_INDEXER_TOKEN", "INDEXER_TOKEN"),
	}

	prefix := strings.ToUpper(normalized) + "_"
	if scoped := firstNonEmptyEnv(prefix+"ENVOI_MNEMONIC", prefix+"MN"); scoped != "" {
		config.Mnemonic = scoped
	}
	if scoped := firstNonEmptyEnv(prefix+"ENVOI_PRIVATE_KEY", prefix+"PRIVATE_KEY"); scoped != "" {
		config.PrivateKey = scoped
	}
	if scoped := firstNonEmptyEnv(prefix + "ENVOI_ALGOD_URL"); scoped != "" {
		config.AlgodURL = scoped
	}
	if scoped := firstNonEmptyEnv(prefix + "ENVOI_INDEXER_URL"); scoped != "" {
		config.IndexerURL = scoped
	}

	if config.Mnemonic == "" && config.PrivateKey == "" {
		return OperatorConfig{}, fmt.Errorf("ENVOI_MNEMONIC or ENVOI_PRIVATE_KEY is required")
	}
	if config.AlgodURL == "" {
		config.AlgodURL = DefaultAlgodURL(normalized)
	}
	if config.IndexerURL == "" {
		config.IndexerURL = DefaultIndexerURL(normalized)
	}

	return config, nil
}

// SigningKey returns the operator's ed25519 key, preferring the mnemonic.
func (c OperatorConfig) SigningKey() (ed25519.PrivateKey, error) {
	if strings.TrimSpace(c.Mnemonic) != "" {
		return ParseMnemonic(c.Mnemonic)
	}
	return ParsePrivateKey(c.PrivateKey)
}

func loadDotEnvIfPresent() {
	dotenvLoadOnce.Do(func() {
		startPaths := make([]string, 0, 2)

		if cwd, err := os.Getwd(); err == nil {
			startPaths = append(startPaths, cwd)
		}
		if _, currentFile, _, ok := runtime.Caller(0); ok {
			startPaths = append(startPaths, filepath.Dir(currentFile))
		}

		seenCandidates := make(map[string]struct{})
		for _, start := range startPaths {
			current := start
			for {
				candidate := filepath.Join(current, ".env")
				if _, exists := seenCandidates[candidate]; !exists {
					seenCandidates[candidate] = struct{}{}
					if _, statErr := os.Stat(candidate); statErr == nil {
						_ = godotenv.Load(candidate)
						return
					}
				}

				parent := filepath.Dir(current)
				if parent == current {
					break
				}
				current = parent
			}
		}
	})
}

func firstNonEmptyEnv(keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(os.Getenv(key))
		if value != "" {
			return value
		}
	}
	return ""
}

// ParseMnemonic converts a 25-word account mnemonic to its ed25519 key.
func ParseMnemonic(phrase string) (ed25519.PrivateKey, error) {
	words := strings.Fields(phrase)
	if len(words) != 25 {
		return nil, fmt.Errorf("mnemonic must have 25 words, got %d", len(words))
	}
	key, err := mnemonic.ToPrivateKey(strings.Join(words, " "))
	if err != nil {
		return nil, fmt.Errorf("failed to parse mnemonic: %w", err)
	}
	return key, nil
}

// ParsePrivateKey parses an ed25519 private key given as raw hex or DER hex.
func ParsePrivateKey(raw string) (ed25519.PrivateKey, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return nil, fmt.Errorf("private key cannot be empty")
	}

	parsed, err := hedera.PrivateKeyFromStringEd25519(candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key as ED25519: %w", err)
	}

	seed := parsed.BytesRaw()
	if len(seed) < ed25519.SeedSize {
		return nil, fmt.Errorf("ED25519 key has %d bytes, expected at least %d", len(seed), ed25519.SeedSize)
	}
	key := ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize])

	expected := parsed.PublicKey().BytesRaw()
	derived := key.Public().(ed25519.PublicKey)
	if len(expected) == ed25519.PublicKeySize && string(expected) != string(derived) {
		return nil, fmt.Errorf("ED25519 key material does not match its public key")
	}

	return key, nil
}
