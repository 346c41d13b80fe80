// Package cli implements laundryctl, a command line front end to the optimizer.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/guttosm/laundry-service/internal/logger"
)

// Execute runs laundryctl and exits non-zero on failure.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		logLevel string
		pretty   bool
	)

	cmd := &cobra.Command{
		Use:          "laundryctl",
		Short:        "Price laundry orders at minimum cost",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.InitWithWriter(cmd.ErrOrStderr(), logLevel, pretty)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "human readable log output")

	cmd.AddCommand(optimizeCmd())
	cmd.AddCommand(catalogCmd())
	return cmd
}
