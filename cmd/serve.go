package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mwolters/budgetcast/internal/model"
	"github.com/mwolters/budgetcast/internal/server"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the forecast HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

// cliSource adapts the shared snapshot loading path to the server.
type cliSource struct{}

func (cliSource) Snapshot(ctx context.Context, budgetID string, refresh bool) (*model.Snapshot, error) {
	return loadSnapshotFor(ctx, budgetID, refresh)
}

func runServe(_ *cobra.Command, _ []string) error {
	addr := flagAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	// The API always logs requests and lifecycle events, regardless of the
	// CLI verbosity.
	logger := log.Logger.Level(zerolog.InfoLevel)
	if flagVerbose {
		logger = log.Logger.Level(zerolog.DebugLevel)
	}

	svc := server.New(server.Config{
		Addr:        addr,
		DefaultDays: cfg.General.DefaultDays,
		SimsDir:     cfg.SimulationsDir(),
	}, cliSource{}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return svc.Run(ctx)
}
