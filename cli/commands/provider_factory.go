package commands

import (
	"fmt"

	"github.com/adelab-inc/ds-bridge-ui-sub000/cli/config"
	"github.com/adelab-inc/ds-bridge-ui-sub000/providers"
	"github.com/adelab-inc/ds-bridge-ui-sub000/providers/anthropic"
	"github.com/adelab-inc/ds-bridge-ui-sub000/providers/gemini"
	"github.com/adelab-inc/ds-bridge-ui-sub000/providers/openai"
)

type providerConstructor func(apiKey, baseURL string) (providers.Provider, error)

func defaultProviderFactory() ProviderFactory {
	constructors := map[string]providerConstructor{
		"openai": func(apiKey, baseURL string) (providers.Provider, error) {
			var opts []openai.Option
			if baseURL != "" {
				opts = append(opts, openai.WithBaseURL(baseURL))
			}
			return openai.New(apiKey, opts...), nil
		},
		"anthropic": func(apiKey, baseURL string) (providers.Provider, error) {
			var opts []anthropic.Option
			if baseURL != "" {
				opts = append(opts, anthropic.WithBaseURL(baseURL))
			}
			return anthropic.New(apiKey, opts...), nil
		},
		"gemini": func(apiKey, baseURL string) (providers.Provider, error) {
			var opts []gemini.Option
			if baseURL != "" {
				opts = append(opts, gemini.WithBaseURL(baseURL))
			}
			return gemini.New(apiKey, opts...), nil
		},
	}

	return func(providerID, apiKey string, cfg *config.Config) (providers.Provider, error) {
		baseURL := providerBaseURL(cfg, providerID)
		if ctor, ok := constructors[providerID]; ok {
			return ctor(apiKey, baseURL)
		}

		// Fall back to registry for externally-registered providers.
		if providers.IsRegistered(providerID) {
			return providers.Create(providerID, apiKey)
		}

		return nil, fmt.Errorf("unsupported provider: %s (available: %v)", providerID, providers.List())
	}
}

func providerBaseURL(cfg *config.Config, providerID string) string {
	if cfg == nil {
		return ""
	}
	pc := cfg.GetProvider(providerID)
	if pc == nil {
		return ""
	}
	return pc.BaseURL
}
