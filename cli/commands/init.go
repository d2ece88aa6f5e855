package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/adelab-inc/ds-bridge-ui-sub000/cli/config"
)

func (a *App) newInitCommand() *cobra.Command {
	var initProvider string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long: `Write a starter config file with the chosen provider and prompt for the
shared client secret.

Example:
  uibridge init
  uibridge init --provider anthropic`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(initProvider, force)
		},
	}

	cmd.Flags().StringVar(&initProvider, "provider", "openai", "default provider for the generated config")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func (a *App) runInit(providerID string, force bool) error {
	if defaultModelFor(providerID) == "" {
		return fmt.Errorf("unknown provider %q (available: openai, anthropic, gemini)", providerID)
	}

	path := a.cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}

	secret, err := a.promptSecret()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := generateConfigFile(path, configTemplateData{
		Provider: providerID,
		Model:    defaultModelFor(providerID),
		Secret:   secret,
	}); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(a.stdout, "Created %s\n\n", path)
	fmt.Fprintln(a.stdout, "Next steps:")
	fmt.Fprintf(a.stdout, "  export %s=<your-key>\n", strings.ToUpper(providerID)+"_API_KEY")
	fmt.Fprintln(a.stdout, "  uibridge serve")

	return nil
}

// promptSecret reads the shared client secret without echo when stdin is a
// terminal; otherwise it reads a plain line so piped input works.
func (a *App) promptSecret() (string, error) {
	fmt.Fprint(a.stdout, "Shared client secret (empty to disable auth): ")

	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secretBytes, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.stdout)
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}
		return strings.TrimSpace(string(secretBytes)), nil
	}

	line, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func defaultModelFor(providerID string) string {
	switch providerID {
	case "openai":
		return "gpt-4o"
	case "anthropic":
		return "claude-sonnet-4-20250514"
	case "gemini":
		return "gemini-2.0-flash"
	default:
		return ""
	}
}

type configTemplateData struct {
	Provider string
	Model    string
	Secret   string
}

var configTemplateFuncs = template.FuncMap{
	"upper": strings.ToUpper,
}

func generateConfigFile(path string, data configTemplateData) error {
	tmpl, err := template.New("config").Funcs(configTemplateFuncs).Parse(configYamlTemplate)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}

var configYamlTemplate = `# uibridge service configuration
provider: {{.Provider}}
model: {{.Model}}
listen_addr: ":8080"
{{- if .Secret}}
secret: {{.Secret}}
{{- end}}

# Realtime fan-out endpoint; leave empty to disable publishing.
# publish_url: https://hooks.example/bridge

# Public URL prefix for stored objects.
# object_base_url: https://bridge.example

# Shutdown draining for in-flight publishes.
drain_timeout: 10s
cancel_wait: 2s

providers:
  {{.Provider}}:
    api_key_env: {{.Provider | upper}}_API_KEY
`
