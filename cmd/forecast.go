package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwolters/budgetcast/internal/cli"
	"github.com/mwolters/budgetcast/internal/forecast"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Project the account balance day by day",
	RunE:  runForecast,
}

func init() {
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
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
	title := fmt.Sprintf("BALANCE FORECAST  Next %dd", flagDays)
	if flagSim != "" {
		title += "  [" + flagSim + "]"
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	values := make([]float64, len(result))
	low, lowDate := result[0].Balance, result[0].Date
	for i, d := range result {
		values[i] = d.Balance
		if d.Balance < low {
			low, lowDate = d.Balance, d.Date
		}
	}
	fmt.Println("  " + cli.RenderSparkline(values))
	fmt.Println()

	rows := make([][]string, 0, len(result))
	for _, d := range result {
		rows = append(rows, []string{
			cli.FormatDate(d.Date),
			cli.FormatSignedMoney(d.BalanceDiff, currency),
			cli.FormatMoney(d.Balance, currency),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Change", "Balance"},
		Rows:    rows,
	}))

	fmt.Println()
	end := result[len(result)-1]
	fmt.Printf("  End balance:    %s\n", cli.FormatMoney(end.Balance, currency))
	fmt.Printf("  Lowest balance: %s on %s\n", cli.FormatMoney(low, currency), cli.FormatDate(lowDate))
	fmt.Println()

	return nil
}
