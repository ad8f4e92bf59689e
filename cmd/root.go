// Package cmd implements the budgetcast CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mwolters/budgetcast/internal/config"
	"github.com/mwolters/budgetcast/internal/model"
	"github.com/mwolters/budgetcast/internal/sims"
	"github.com/mwolters/budgetcast/internal/store"
	"github.com/mwolters/budgetcast/internal/ynab"
)

var (
	flagBudget  string
	flagDays    int
	flagSim     string
	flagRefresh bool
	flagVerbose bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "budgetcast",
	Short: "Balance forecasting for YNAB budgets",
	Long: "Project day-by-day account balances from scheduled transactions,\n" +
		"spending goals, and what-if scenarios.",
	PersistentPreRunE: initRoot,
	RunE:              runForecast,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagBudget, "budget", "b", "", "Budget ID (UUID), overrides config")
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 0, "Forecast horizon in days")
	rootCmd.PersistentFlags().StringVarP(&flagSim, "sim", "s", "", "Apply a named simulation set")
	rootCmd.PersistentFlags().BoolVar(&flagRefresh, "refresh", false, "Fetch fresh data instead of using the local snapshot")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

func initRoot(_ *cobra.Command, _ []string) error {
	// A .env in the working directory may carry BUDGETCAST_YNAB_TOKEN.
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if flagVerbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	if flagDays < 1 {
		flagDays = cfg.General.DefaultDays
	}
	return nil
}

// budgetID resolves the budget to operate on: flag first, then config.
func budgetID() (string, error) {
	id := flagBudget
	if id == "" {
		id = cfg.YNAB.BudgetID
	}
	if id == "" {
		return "", fmt.Errorf("no budget configured: pass --budget or run `budgetcast setup`")
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("budget id %q is not a UUID", id)
	}
	return id, nil
}

func newClient() (*ynab.Client, error) {
	token := config.Token(cfg)
	if token == "" {
		return nil, fmt.Errorf("no YNAB token configured: set BUDGETCAST_YNAB_TOKEN or run `budgetcast setup`")
	}
	return ynab.NewClient(token, cfg.YNAB.BaseURL)
}

// loadSnapshot is the shared data path used by all commands: local snapshot
// first, API fetch when the snapshot is missing or a refresh is requested.
func loadSnapshot(ctx context.Context, refresh bool) (*model.Snapshot, error) {
	id, err := budgetID()
	if err != nil {
		return nil, err
	}
	return loadSnapshotFor(ctx, id, refresh)
}

func loadSnapshotFor(ctx context.Context, id string, refresh bool) (*model.Snapshot, error) {
	st, err := store.Open(config.SnapshotPath())
	if err != nil {
		return nil, err
	}
	defer st.Close()

	if !refresh {
		snap, err := st.LoadSnapshot(id)
		if err != nil {
			return nil, err
		}
		if snap != nil {
			log.Debug().Str("budget_id", id).Time("fetched_at", snap.FetchedAt).Msg("using local snapshot")
			return snap, nil
		}
	}

	client, err := newClient()
	if err != nil {
		return nil, err
	}

	log.Debug().Str("budget_id", id).Msg("fetching budget from API")
	snap, err := client.Snapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := st.SaveSnapshot(snap); err != nil {
		log.Warn().Err(err).Msg("caching snapshot failed")
	}
	return snap, nil
}

// simEvents resolves the --sim flag to its events. An empty flag means the
// baseline forecast.
func simEvents() ([]model.Simulation, error) {
	if flagSim == "" {
		return nil, nil
	}
	sets, err := sims.Load(cfg.SimulationsDir())
	if err != nil {
		return nil, err
	}
	set, ok := sims.Find(sets, flagSim)
	if !ok {
		return nil, fmt.Errorf("unknown simulation %q (see `budgetcast sims`)", flagSim)
	}
	return set.Events, nil
}
