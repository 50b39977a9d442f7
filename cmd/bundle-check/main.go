// Package main provides the bundle-check CLI, which sweeps a running sales
// explorer and verifies the bundles it serves.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/vgsales/internal/bundlecheck"
	"github.com/okian/vgsales/pkg/logger"
)

const defaultRunTimeout = 5 * time.Minute

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := bundlecheck.DefaultConfig()
	var (
		runTimeout time.Duration
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "bundle-check",
		Short: "Verify the bundles served by a running sales explorer",
		Long: `bundle-check fetches every region, table size and tab combination twice
from /api/bundle and checks ordering, length bounds, label overlays and
reproducibility. Unless --skip-stateful is set it also drives /api/state
through tab switches and restores the original state afterwards.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.InitWriter(cmd.ErrOrStderr()); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			if err := logger.SetLevelString(logLevel); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
			defer cancel()

			_, err := bundlecheck.Run(ctx, cfg, cmd.OutOrStdout())
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "base URL of the service")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout")
	flags.StringSliceVar(&cfg.Regions, "regions", cfg.Regions, "regions to sweep")
	flags.IntSliceVar(&cfg.Counts, "counts", cfg.Counts, "table sizes to sweep")
	flags.StringSliceVar(&cfg.Tabs, "tabs", cfg.Tabs, "tabs to sweep")
	flags.BoolVar(&cfg.SkipStateful, "skip-stateful", false, "do not change the server state")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "list passing checks too")
	flags.DurationVar(&runTimeout, "run-timeout", defaultRunTimeout, "overall time limit")
	flags.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	return cmd
}
