package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/nvandessel/ballfall/internal/config"
	"github.com/spf13/cobra"
)

// Set via ldflags at build time.
var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ballfall",
		Short: "Settle falling bodies in a funnel and record which ones touch",
		Long: `ballfall drops circular bodies into a funnel under gravity, lets them
settle, and writes the resulting contact graph.

Each run appends a timestamped report (positions and contacts) and replaces
connections.txt with one "i;j" line per touching pair.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./ballfall.yaml if present)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newContactsCmd(),
		newGraphCmd(),
		newConfigCmd(),
		newReportsCmd(),
	)

	return rootCmd
}

// loadConfig loads the config named by --config, or the implicit one.
func loadConfig(cmd *cobra.Command) (*config.BallfallConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// signalContext returns a context canceled on the first interrupt or
// termination signal.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, stopSignals...)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}
