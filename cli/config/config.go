// Package config handles service configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file leaves a field unset.
const (
	DefaultListenAddr   = ":8080"
	DefaultDrainTimeout = 10 * time.Second
	DefaultCancelWait   = 2 * time.Second
)

// Config represents the service configuration.
type Config struct {
	// Provider is the backend adapter to serve with (openai, anthropic, gemini).
	Provider string `yaml:"provider"`

	// Model is the model identifier passed through to the backend.
	Model string `yaml:"model"`

	// ListenAddr is the HTTP listen address.
	ListenAddr string `yaml:"listen_addr"`

	// Secret is the shared secret clients must present. Empty disables the
	// auth gate.
	Secret string `yaml:"secret"`

	// PublishURL is the realtime webhook endpoint for fan-out publishes.
	// Empty disables publishing.
	PublishURL string `yaml:"publish_url"`

	// ObjectBaseURL prefixes the public URLs handed out for stored objects.
	ObjectBaseURL string `yaml:"object_base_url"`

	// DrainTimeout bounds the wait for in-flight publishes at shutdown.
	DrainTimeout time.Duration `yaml:"drain_timeout"`

	// CancelWait bounds the extra wait after cancelling stalled publishes.
	CancelWait time.Duration `yaml:"cancel_wait"`

	Providers map[string]ProviderConfig `yaml:"providers"`
}

// ProviderConfig holds per-provider overrides.
type ProviderConfig struct {
	// APIKeyEnv names the environment variable holding the API key. Defaults
	// to <PROVIDER>_API_KEY.
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
}

// DefaultConfigPath returns the default configuration file path for the
// current platform.
// - macOS/Linux: ~/.uibridge/config.yaml
// - Windows: %USERPROFILE%\.uibridge\config.yaml
func DefaultConfigPath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		return "config.yaml"
	}

	return filepath.Join(homeDir, ".uibridge", "config.yaml")
}

// LoadConfig loads configuration from the specified path.
// If the file doesn't exist, returns a config with defaults without error.
// Returns an error only if the file exists but cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Providers: make(map[string]ProviderConfig),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.DrainTimeout <= 0 {
		c.DrainTimeout = DefaultDrainTimeout
	}
	if c.CancelWait <= 0 {
		c.CancelWait = DefaultCancelWait
	}
}

// LoadEnv overlays variables from a .env file in the working directory.
// A missing file is not an error; existing process variables win.
func LoadEnv() {
	_ = godotenv.Load()
}

// GetProvider returns the provider config for the given ID.
// Returns nil if the provider is not configured.
func (c *Config) GetProvider(id string) *ProviderConfig {
	if c.Providers == nil {
		return nil
	}
	if pc, ok := c.Providers[id]; ok {
		return &pc
	}
	return nil
}

// APIKeyEnvVar returns the environment variable name holding the API key for
// the given provider.
func (c *Config) APIKeyEnvVar(providerID string) string {
	if pc := c.GetProvider(providerID); pc != nil && pc.APIKeyEnv != "" {
		return pc.APIKeyEnv
	}
	return strings.ToUpper(providerID) + "_API_KEY"
}

// ResolveAPIKey reads the API key for the given provider from the
// environment.
func (c *Config) ResolveAPIKey(providerID string) (string, error) {
	envVar := c.APIKeyEnvVar(providerID)
	key := os.Getenv(envVar)
	if key == "" {
		return "", fmt.Errorf("no API key for provider %s: set %s", providerID, envVar)
	}
	return key, nil
}
