package anthropic

import (
	"github.com/adelab-inc/ds-bridge-ui-sub000/providers"
)

func init() {
	providers.Register("anthropic", func(apiKey string) providers.Provider {
		return New(apiKey)
	})
}
