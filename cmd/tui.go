package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mwolters/budgetcast/internal/model"
	"github.com/mwolters/budgetcast/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive forecast dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	loader := func(ctx context.Context, refresh bool) (*model.Snapshot, error) {
		return loadSnapshot(ctx, refresh || flagRefresh)
	}

	return tui.Run(tui.Options{
		Loader:   loader,
		SimsDir:  cfg.SimulationsDir(),
		Days:     flagDays,
		Currency: cfg.General.Currency,
		Theme:    cfg.Appearance.Theme,
	})
}
