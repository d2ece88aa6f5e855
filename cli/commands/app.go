// Package commands implements the CLI command structure using Cobra.
package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/adelab-inc/ds-bridge-ui-sub000/cli/config"
	"github.com/adelab-inc/ds-bridge-ui-sub000/providers"
)

// ConfigLoader loads service config from a path.
type ConfigLoader func(path string) (*config.Config, error)

// ProviderFactory creates a provider using service config context.
type ProviderFactory func(providerID, apiKey string, cfg *config.Config) (providers.Provider, error)

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig     ConfigLoader
	createProvider ProviderFactory
	stdin          io.Reader
	stdout         io.Writer
	stderr         io.Writer

	cfgFile    string
	provider   string
	model      string
	listenAddr string
	verbose    bool

	cfg *config.Config
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithProviderFactory injects a provider factory dependency.
func WithProviderFactory(factory ProviderFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.createProvider = factory
		}
	}
}

// WithIO injects process I/O streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// NewApp creates a new CLI app with default dependencies.
func NewApp(opts ...AppOption) *App {
	a := &App{
		loadConfig:     config.LoadConfig,
		createProvider: defaultProviderFactory(),
		stdin:          os.Stdin,
		stdout:         os.Stdout,
		stderr:         os.Stderr,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "uibridge",
		Short: "uibridge - LLM-backed UI generation service",
		Long: `uibridge serves an LLM chat API that turns conversations into UI
component files, streaming parsed chat and code events to clients.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		SilenceUsage: true,
	}

	// Global flags available to all commands.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.uibridge/config.yaml)")
	root.PersistentFlags().StringVar(&a.provider, "provider", "", "provider ID (openai, anthropic, gemini)")
	root.PersistentFlags().StringVar(&a.model, "model", "", "model ID (e.g. gpt-4o)")
	root.PersistentFlags().StringVar(&a.listenAddr, "listen", "", "HTTP listen address (e.g. :8080)")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(a.newServeCommand())
	root.AddCommand(a.newInitCommand())
	root.AddCommand(a.newVersionCommand())

	return root
}

// Execute runs the root command.
func (a *App) Execute() error {
	return a.root.Execute()
}

func (a *App) initConfig() error {
	config.LoadEnv()

	path := a.cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := a.loadConfig(path)
	if err != nil {
		return err
	}
	a.cfg = cfg

	// Apply config defaults if flags not set.
	if a.provider == "" && cfg.Provider != "" {
		a.provider = cfg.Provider
	}
	if a.model == "" && cfg.Model != "" {
		a.model = cfg.Model
	}
	if a.listenAddr == "" {
		a.listenAddr = cfg.ListenAddr
	}

	return nil
}

// Execute runs a fresh app root command.
func Execute() error {
	return NewApp().Execute()
}
