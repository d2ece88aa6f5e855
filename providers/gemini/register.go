package gemini

import (
	"github.com/adelab-inc/ds-bridge-ui-sub000/providers"
)

func init() {
	providers.Register("gemini", func(apiKey string) providers.Provider {
		return New(apiKey)
	})
}
