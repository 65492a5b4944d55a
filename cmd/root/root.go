// Package root contains the root command for the application
package root

import (
	"fmt"
	"strings"

	"fjacquet/finsight/internal/config"
	"fjacquet/finsight/internal/container"
	"fjacquet/finsight/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags shared by every subcommand.
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	UserID     string
	Backend    string
	StorePath  string
}

var (
	// Log is the shared logger instance for commands. It is replaced in
	// PersistentPreRunE once the configuration is known.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "finsight",
		Short: "Personal finance insights and a voice command interpreter.",
		Long: `finsight analyses a user's income and expense history, ranks heuristic
insights and a financial health score, and interprets spoken commands that
add, inspect or delete transactions.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}

	// SharedFlags holds the persistent flag values.
	SharedFlags = CommonFlags{}
)

// Init initializes the root command's persistent flags.
func Init() {
	flags := Cmd.PersistentFlags()
	flags.StringVarP(&SharedFlags.ConfigFile, "config", "c", "", "Config file (default: config.yaml in $HOME/.finsight, .finsight or .)")
	flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	flags.StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format override (text or json)")
	flags.StringVarP(&SharedFlags.UserID, "user", "u", "default", "User whose transactions are used")
	flags.StringVar(&SharedFlags.Backend, "store", "", "Store backend override (memory, csv, sqlite)")
	flags.StringVar(&SharedFlags.StorePath, "store-path", "", "Store file override")
}

// LoadConfig reads the configuration and applies the flag overrides.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(SharedFlags.ConfigFile)
	if err != nil {
		return nil, err
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(SharedFlags.LogLevel)
	}
	if SharedFlags.LogFormat != "" {
		cfg.Log.Format = strings.ToLower(SharedFlags.LogFormat)
	}
	if SharedFlags.Backend != "" {
		cfg.Store.Backend = strings.ToLower(SharedFlags.Backend)
	}
	if SharedFlags.StorePath != "" {
		cfg.Store.Path = SharedFlags.StorePath
	}
	return cfg, nil
}

// NewContainer loads the configuration and wires the application with the
// command logger. Callers close the container.
func NewContainer(opts ...container.Option) (*container.Container, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	c, err := container.NewContainer(cfg, append([]container.Option{container.WithLogger(Log)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return c, nil
}
