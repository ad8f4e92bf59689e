package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwolters/budgetcast/internal/cli"
	"github.com/mwolters/budgetcast/internal/forecast"
)

var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "List every projected balance change with its reason",
	RunE:  runChanges,
}

func init() {
	rootCmd.AddCommand(changesCmd)
}

func runChanges(_ *cobra.Command, _ []string) error {
	snap, err := loadSnapshot(context.Background(), flagRefresh)
	if err != nil {
		return err
	}
	events, err := simEvents()
	if err != nil {
		return err
	}

	result := forecast.Project(forecast.Input{
		Accounts:    snap.Accounts,
		Categories:  snap.Categories,
		Scheduled:   snap.Scheduled,
		Simulations: events,
		DaysAhead:   flagDays,
	})
	if len(result) == 0 {
		fmt.Println("\n  No balance changes in the selected horizon.")
		return nil
	}

	currency := cfg.General.Currency

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PROJECTED CHANGES  Next %dd", flagDays)))
	fmt.Println()

	var rows [][]string
	for _, day := range result {
		for _, c := range day.Changes {
			category := c.Category
			if c.IsSimulation {
				category += " *"
			}
			rows = append(rows, []string{
				day.Date,
				cli.FormatSignedMoney(c.Amount, currency),
				c.Reason,
				category,
			})
		}
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Amount", "Reason", "Category"},
		Rows:    rows,
	}))

	if flagSim != "" {
		fmt.Println()
		fmt.Println("  * simulated event")
	}
	fmt.Println()

	return nil
}
