package anthropic

import (
	"net/http"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
)

// DefaultBaseURL is the default Anthropic API base URL.
const DefaultBaseURL = "https://api.anthropic.com"

// DefaultVersion is the default Anthropic API version.
const DefaultVersion = "2023-06-01"

// Config holds configuration for the Anthropic provider.
type Config struct {
	// APIKey is the Anthropic API key (required).
	APIKey core.Secret

	// BaseURL is the API base URL. Defaults to https://api.anthropic.com
	BaseURL string

	// HTTPClient is the HTTP client to use. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Version is the Anthropic API version. Defaults to 2023-06-01.
	Version string
}

// Option configures the Anthropic provider.
type Option func(*Config)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithVersion sets the Anthropic API version.
func WithVersion(version string) Option {
	return func(c *Config) {
		c.Version = version
	}
}
