package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveEndpointPatchesOnlyEndpoint(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	seed := `{"host":"0.0.0.0","port":9000,"bridge_endpoint":"http://old-bridge:3001"}`
	if err := os.WriteFile(path, []byte(seed), 0o600); err != nil {
		t.Fatalf("seeding config file: %v", err)
	}

	t.Setenv("INSIGHTDECK_CONFIG", path)
	t.Setenv("ANTHROPIC_API_KEY", "sk-test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AnthropicAPIKey != "sk-test-secret" {
		t.Fatalf("AnthropicAPIKey = %q, want env value", cfg.AnthropicAPIKey)
	}

	if err := cfg.SaveEndpoint("http://new-bridge:3001"); err != nil {
		t.Fatalf("SaveEndpoint() error = %v", err)
	}
	if cfg.BridgeEndpoint != "http://new-bridge:3001" {
		t.Errorf("BridgeEndpoint = %q, want the saved endpoint", cfg.BridgeEndpoint)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading config file back: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("config file is not valid JSON after save: %v", err)
	}
	if doc["bridge_endpoint"] != "http://new-bridge:3001" {
		t.Errorf("bridge_endpoint = %v, want the saved endpoint", doc["bridge_endpoint"])
	}
	if _, ok := doc["anthropic_api_key"]; ok {
		t.Errorf("API key from the environment was persisted to the config file")
	}
	if doc["host"] != "0.0.0.0" {
		t.Errorf("host = %v, file field not preserved", doc["host"])
	}
	if doc["port"] != float64(9000) {
		t.Errorf("port = %v, file field not preserved", doc["port"])
	}
}

func TestSaveEndpointWithoutConfigFile(t *testing.T) {
	cfg := &Config{BridgeEndpoint: "http://old-bridge:3001"}
	if err := cfg.SaveEndpoint("http://new-bridge:3001"); err != nil {
		t.Fatalf("SaveEndpoint() error = %v", err)
	}
	if cfg.BridgeEndpoint != "http://new-bridge:3001" {
		t.Errorf("BridgeEndpoint = %q, want the saved endpoint", cfg.BridgeEndpoint)
	}
}
