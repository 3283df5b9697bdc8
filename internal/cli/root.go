// Package cli implements the kollektiv command line tool.
package cli

import "github.com/spf13/cobra"

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

// globalFlags are shared by every command that builds an engine.
type globalFlags struct {
	configPath  string
	household   string
	storeURL    string
	logLevel    string
	logFormat   string
	metricsFile string
	today       string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "kollektiv",
		Short:         "Fair room distribution and rotation for shared households",
		Long:          "kollektiv assigns a household's shared rooms to its members, rotates them week by week and previews the schedule. State can be persisted to NATS KV, Redis or Postgres with --store.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&flags.household, "household", "household.yaml", "YAML household file (rooms and members)")
	pf.StringVar(&flags.storeURL, "store", "", "Snapshot store URL (memory://, nats://, redis://, postgres://)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: json or console (default from config)")
	pf.StringVar(&flags.today, "today", "", "Pretend the current date is YYYY-MM-DD")
	pf.StringVar(&flags.metricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file on exit")

	rootCmd.AddCommand(
		newVersionCmd(),
		newScheduleCmd(flags),
		newDistributeCmd(flags),
		newRotateCmd(flags),
		newUpcomingCmd(flags),
		newResetCmd(flags),
	)

	return rootCmd
}
