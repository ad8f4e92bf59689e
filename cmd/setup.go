package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mwolters/budgetcast/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Start from the existing config so re-running keeps current values.
	current, _ := config.Load()

	token := current.YNAB.Token
	budget := current.YNAB.BudgetID
	days := current.General.DefaultDays
	currency := current.General.Currency
	theme := current.Appearance.Theme

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("YNAB access token").
				Description("From app.ynab.com under Account Settings > Developer.\nLeave empty to use the BUDGETCAST_YNAB_TOKEN environment variable.").
				EchoMode(huh.EchoModePassword).
				Value(&token),
			huh.NewInput().
				Title("Budget ID").
				Description("The UUID in the budget's URL.").
				Validate(validateBudgetID).
				Value(&budget),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Default forecast horizon").
				Options(
					huh.NewOption("90 days", 90),
					huh.NewOption("180 days", 180),
					huh.NewOption("300 days", 300),
					huh.NewOption("1 year", 365),
				).
				Value(&days),
			huh.NewInput().
				Title("Currency code").
				Description("ISO code used for display, e.g. EUR or USD.").
				Value(&currency),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(
					huh.NewOption("Flexoki Dark", "flexoki-dark"),
					huh.NewOption("Terminal (ANSI 16)", "terminal"),
				).
				Value(&theme),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	current.YNAB.Token = token
	current.YNAB.BudgetID = budget
	current.General.DefaultDays = days
	current.General.Currency = currency
	current.Appearance.Theme = theme

	if err := config.Save(current); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Printf("  Simulations folder: %s\n", current.SimulationsDir())
	fmt.Println("  Run `budgetcast setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func validateBudgetID(s string) error {
	if s == "" {
		return nil
	}
	if _, err := uuid.Parse(s); err != nil {
		return fmt.Errorf("not a UUID")
	}
	return nil
}
