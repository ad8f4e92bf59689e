package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mwolters/budgetcast/internal/cli"
	"github.com/mwolters/budgetcast/internal/forecast"
	"github.com/mwolters/budgetcast/internal/model"
	"github.com/mwolters/budgetcast/internal/sims"
)

var simsCmd = &cobra.Command{
	Use:   "sims",
	Short: "List simulation sets and compare their end balances",
	RunE:  runSims,
}

func init() {
	rootCmd.AddCommand(simsCmd)
}

func runSims(_ *cobra.Command, _ []string) error {
	sets, err := sims.Load(cfg.SimulationsDir())
	if err != nil {
		return err
	}
	if len(sets) == 0 {
		fmt.Printf("\n  No simulation sets in %s.\n", cfg.SimulationsDir())
		fmt.Println("  Drop a JSON file with hypothetical events there to get started.")
		return nil
	}

	snap, err := loadSnapshot(context.Background(), flagRefresh)
	if err != nil {
		return err
	}

	endBalance := func(events []model.Simulation) float64 {
		result := forecast.Project(forecast.Input{
			Accounts:    snap.Accounts,
			Categories:  snap.Categories,
			Scheduled:   snap.Scheduled,
			Simulations: events,
			DaysAhead:   flagDays,
		})
		if len(result) == 0 {
			return 0
		}
		return result[len(result)-1].Balance
	}

	currency := cfg.General.Currency
	baseline := endBalance(nil)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SIMULATIONS  End balance after %dd", flagDays)))
	fmt.Println()

	rows := [][]string{
		{"Actual Balance", "", cli.FormatMoney(baseline, currency), ""},
	}
	for _, set := range sets {
		end := endBalance(set.Events)
		rows = append(rows, []string{
			set.Name,
			strconv.Itoa(len(set.Events)),
			cli.FormatMoney(end, currency),
			cli.FormatSignedMoney(end-baseline, currency),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Scenario", "Events", "End Balance", "vs Actual"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}
