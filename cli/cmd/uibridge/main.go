// Command uibridge runs the LLM-backed UI generation service.
package main

import (
	"os"

	"github.com/adelab-inc/ds-bridge-ui-sub000/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
