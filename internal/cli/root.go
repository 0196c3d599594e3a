// Package cli implements the apkgraph command-line interface.
//
// The tool has a single entry point with no behavior flags: everything
// is driven by a TOML configuration file, passed as an optional
// positional argument (default config.toml). The only command-line
// switches are the ambient --verbose logging toggle and --version.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/alpinetools/apkgraph/pkg/buildinfo"
)

// DefaultConfigPath is used when no config file argument is given.
const DefaultConfigPath = "config.toml"

// Execute runs the apkgraph CLI. The context should be signal-aware so
// Ctrl-C cancels an in-flight index download or traversal.
//
// Logging goes to stderr at info level, or debug with --verbose; the
// logger travels on the command context.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:   "apkgraph [config.toml]",
		Short: "apkgraph draws APK dependency graphs",
		Long: `apkgraph resolves the transitive dependencies of an Alpine package from a
repository APKINDEX and writes the graph as a PlantUML or DOT diagram.

The run is driven entirely by a configuration file:

  [settings]
  package_name   = "curl"
  repository_url = "https://dl-cdn.alpinelinux.org/alpine/v3.20/main"`,
		Version:      buildinfo.Version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := DefaultConfigPath
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd.Context(), path)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	return root.ExecuteContext(ctx)
}
