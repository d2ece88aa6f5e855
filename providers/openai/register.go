package openai

import (
	"github.com/adelab-inc/ds-bridge-ui-sub000/providers"
)

func init() {
	providers.Register("openai", func(apiKey string) providers.Provider {
		return New(apiKey)
	})
}
