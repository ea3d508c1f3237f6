// nmdo deploys seed blueprints from a remote document store onto the local
// filesystem. A seed names an ordered set of module pages; each module page
// carries one file's destination and its source text in a code block.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

var (
	cfgFile string
	cfg     *Config
	logger  *slog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates and configures the root command. Configuration and the
// logger are initialized once here for every subcommand.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nmdo",
		Short: "nmdo deploys seed blueprints from a remote document store.",
		Long: `nmdo turns a declarative seed record living in a remote document
store into a working local project skeleton.

A seed lists module pages in deployment order plus an optional bootstrap
command. Each module page names a file, an optional sub-path, and carries
the file's content in its first non-empty code block.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}
			logger = SetupLogger(cfg)
			return nil
		},
	}

	cmd.AddCommand(newDeployCmd())
	cmd.AddCommand(newSeedsCmd())
	cmd.AddCommand(newHistoryCmd())

	cmd.Version = fmt.Sprintf("%s (built %s)", Version, BuildTime)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./nmdo.yaml plus NMDO_* environment)")

	return cmd
}
