package shared

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Deployment lists the application IDs and defaults of one envoi
// deployment.
type Deployment struct {
	Network             string `toml:"network"`
	AlgodURL            string `toml:"algod_url"`
	AlgodToken          string `toml:"algod_token"`
	IndexerURL          string `toml:"indexer_url"`
	Digest              string `toml:"digest"`
	Registry            uint64 `toml:"registry"`
	Resolver            uint64 `toml:"resolver"`
	Registrar           uint64 `toml:"registrar"`
	ReverseRegistrar    uint64 `toml:"reverse_registrar"`
	Token               uint64 `toml:"token"`
	RSVP                uint64 `toml:"rsvp"`
	StakingRegistrar    uint64 `toml:"staking_registrar"`
	CollectionRegistrar uint64 `toml:"collection_registrar"`
	WaitRounds          uint64 `toml:"wait_rounds"`
	Simulate            bool   `toml:"simulate"`
	Debug               bool   `toml:"debug"`
}

// DefaultDeployment returns the deployment used when no file is given.
func DefaultDeployment() Deployment {
	return Deployment{
		Network:    NetworkTestnet,
		Digest:     "sha256",
		WaitRounds: 4,
	}
}

// LoadDeployment reads a TOML deployment file over the defaults. An empty
// path returns the defaults.
func LoadDeployment(path string) (Deployment, error) {
	deployment := DefaultDeployment()
	path = strings.TrimSpace(path)
	if path == "" {
		return deployment, nil
	}
	if _, err := os.Stat(path); err != nil {
		return deployment, fmt.Errorf("failed to stat deployment file: %w", err)
	}

	meta, err := toml.DecodeFile(path, &deployment)
	if err != nil {
		return deployment, fmt.Errorf("failed to decode deployment file: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return deployment, fmt.Errorf("unknown deployment keys: %v", undecoded)
	}
	if !meta.IsDefined("wait_rounds") || deployment.WaitRounds == 0 {
		deployment.WaitRounds = 4
	}

	normalized, err := NormalizeNetwork(deployment.Network)
	if err != nil {
		return deployment, err
	}
	deployment.Network = normalized
	return deployment, nil
}

// ApplyOperator fills empty endpoints from operator configuration.
func (d *Deployment) ApplyOperator(operator OperatorConfig) {
	if d.AlgodURL == "" {
		d.AlgodURL = operator.AlgodURL
		d.AlgodToken = operator.AlgodToken
	}
	if d.IndexerURL == "" {
		d.IndexerURL = operator.IndexerURL
	}
}
