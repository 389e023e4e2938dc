package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"sync"
)

type Config struct {
	// Server
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Environment string `json:"environment"`
	APIPrefix   string `json:"api_prefix"`
	LogLevel    string `json:"log_level"`

	// CORS
	CORSOrigins []string `json:"cors_origins"`

	// Rate Limiting
	RateLimitPerMinute int `json:"rate_limit_per_minute"`

	// Bridge
	BridgeEndpoint string `json:"bridge_endpoint"`
	OriginScheme   string `json:"origin_scheme"` // scheme the dashboard is served over

	// AI / LLM
	AnthropicAPIKey  string `json:"anthropic_api_key"`
	AnthropicBaseURL string `json:"anthropic_base_url"` // override for custom proxy
	Model            string `json:"model"`
	SampleSize       int    `json:"sample_size"`

	mu   sync.Mutex
	path string // config file the endpoint is persisted back to
}

func Load() (*Config, error) {
	cfg := &Config{
		Host:               DefaultHost,
		Port:               DefaultPort,
		Environment:        DefaultEnvironment,
		APIPrefix:          DefaultAPIPrefix,
		LogLevel:           DefaultLogLevel,
		CORSOrigins:        DefaultCORSOrigins,
		RateLimitPerMinute: DefaultRateLimitPerMinute,
		BridgeEndpoint:     DefaultBridgeEndpoint,
		OriginScheme:       DefaultOriginScheme,
		SampleSize:         DefaultSampleSize,
	}

	// Load from JSON config file if specified
	if path := getEnv("INSIGHTDECK_CONFIG", ""); path != "" {
		if err := loadJSON(path, cfg); err != nil {
			return nil, err
		}
		cfg.path = path
	}

	// Environment overrides
	applyEnvOverrides(cfg)

	return cfg, nil
}

// SaveEndpoint records a validated bridge endpoint as the new default and,
// when a config file is in use, persists it there. One logical writer (the
// UI) drives this; the mutex covers a parallel caller anyway.
func (c *Config) SaveEndpoint(endpoint string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.BridgeEndpoint = endpoint
	if c.path == "" {
		return nil
	}

	// Patch only the endpoint key. Writing the whole struct back would bake
	// env-sourced values into the file, the API key above all.
	doc := map[string]json.RawMessage{}
	data, err := os.ReadFile(c.path)
	switch {
	case err == nil && len(data) > 0:
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
	case err != nil && !os.IsNotExist(err):
		return err
	}
	raw, err := json.Marshal(endpoint)
	if err != nil {
		return err
	}
	doc["bridge_endpoint"] = raw
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, out, 0o600)
}

func loadJSON(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := getEnv("INSIGHTDECK_HOST", ""); v != "" {
		cfg.Host = v
	}
	if v := getEnv("INSIGHTDECK_PORT", ""); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := getEnv("INSIGHTDECK_ENV", ""); v != "" {
		cfg.Environment = v
	}
	if v := getEnv("INSIGHTDECK_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getEnv("INSIGHTDECK_CORS_ORIGINS", ""); v != "" {
		cfg.CORSOrigins = strings.Split(v, ",")
	}
	if v := getEnv("INSIGHTDECK_ORIGIN_SCHEME", ""); v != "" {
		cfg.OriginScheme = v
	}
	if v := getEnv("BRIDGE_ENDPOINT", ""); v != "" {
		cfg.BridgeEndpoint = v
	}
	if v := getEnv("ANTHROPIC_API_KEY", ""); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := getEnv("ANTHROPIC_BASE_URL", ""); v != "" {
		cfg.AnthropicBaseURL = v
	}
	if v := getEnv("INSIGHTDECK_MODEL", ""); v != "" {
		cfg.Model = v
	}
	if v := getEnv("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		if r, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitPerMinute = r
		}
	}
	if v := getEnv("INSIGHTDECK_SAMPLE_SIZE", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SampleSize = n
		}
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
