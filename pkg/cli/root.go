// Package cli implements the prioq command line.
package cli

import (
	"fmt"
	"prioq/pkg/config"

	"github.com/spf13/cobra"
)

// Version information, set at build time via ldflags
var (
	version = "dev"
	commit  = "none"
)

var banner = `
             _
 _ __  _ __ (_) ___   __ _
| '_ \| '__|| |/ _ \ / _` + "`" + ` |
| |_) | |   | | (_) | (_| |
| .__/|_|   |_|\___/ \__, |
|_|                     |_|`

// options carries the persistent flags and the configuration they resolve to.
type options struct {
	configPath string
	debug      bool
	props      *config.Properties
}

func (o *options) load(cmd *cobra.Command) error {
	loader := config.NewLoader()
	if cmd.Flags().Changed("debug") {
		loader.SetOverride("debugMode", o.debug)
	}
	props, err := loader.Load(o.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	props.ApplyLogLevel()
	o.props = props
	return nil
}

// NewRootCmd builds the command tree. Each call returns independent flag state.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "prioq",
		Short: "Inspect and convert exported priority collections",
		Long: `prioq loads collections exported as JSON, YAML or binary dumps,
prints them in priority order and converts them between formats.

Three collections are supported: a stable priority queue (queue), a
bucketed priority queue (fast) and a name keyed priority list (list).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (YAML)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newVersionCmd(),
		newDrainCmd(opts),
		newConvertCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// no config needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, banner)
			fmt.Fprintf(out, "prioq %s (%s)\n", version, commit)
		},
	}
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c string) {
	version = v
	commit = c
}
