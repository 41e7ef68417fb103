package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeDeployment(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "envoi.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write deployment: %v", err)
	}
	return path
}

func TestLoadDeploymentDefaults(t *testing.T) {
	deployment, err := LoadDeployment("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deployment.Network != NetworkTestnet || deployment.WaitRounds != 4 || deployment.Digest != "sha256" {
		t.Fatalf("unexpected defaults: %+v", deployment)
	}
}

func TestLoadDeploymentFile(t *testing.T) {
	path := writeDeployment(t, `
network = "Mainnet"
registry = 797607
resolver = 797608
registrar = 797609
reverse_registrar = 797610
token = 390001
rsvp = 797611
wait_rounds = 8
simulate = true
`)

	deployment, err := LoadDeployment(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deployment.Network != NetworkMainnet {
		t.Fatalf("expected mainnet, got %q", deployment.Network)
	}
	if deployment.Registry != 797607 || deployment.Registrar != 797609 || deployment.Token != 390001 {
		t.Fatalf("unexpected app IDs: %+v", deployment)
	}
	if deployment.WaitRounds != 8 || !deployment.Simulate {
		t.Fatalf("unexpected flags: %+v", deployment)
	}
}

func TestLoadDeploymentRejectsUnknownKeys(t *testing.T) {
	path := writeDeployment(t, "registy = 1\n")
	if _, err := LoadDeployment(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadDeploymentMissingFile(t *testing.T) {
	if _, err := LoadDeployment(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDeploymentApplyOperator(t *testing.T) {
	deployment := DefaultDeployment()
	deployment.ApplyOperator(OperatorConfig{AlgodURL: "https://a.example.com", AlgodToken: "t", IndexerURL: "https://i.example.com"})
	if deployment.AlgodURL != "https://a.example.com" || deployment.AlgodToken != "t" || deployment.IndexerURL != "https://i.example.com" {
		t.Fatalf("unexpected deployment: %+v", deployment)
	}
}

func TestNewLoggerToLevels(t *testing.T) {
	var buffer bytes.Buffer
	logger := NewLoggerTo(&buffer, "envoi", false)
	logger.Debug().Msg("hidden")
	logger.Info().Msg("visible")

	output := buffer.String()
	if strings.Contains(output, "hidden") {
		t.Fatalf("debug message leaked at info level: %s", output)
	}
	if !strings.Contains(output, "visible") {
		t.Fatalf("expected info message, got %s", output)
	}
}
