package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwolters/budgetcast/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default days: %d\n", cfg.General.DefaultDays)
	fmt.Printf("    Currency:     %s\n", cfg.General.Currency)
	fmt.Println()

	fmt.Println("  [YNAB]")
	token := config.Token(cfg)
	if token != "" {
		fmt.Printf("    Token:     %s\n", maskToken(token))
	} else {
		fmt.Println("    Token:     not configured")
	}
	if cfg.YNAB.BudgetID != "" {
		fmt.Printf("    Budget ID: %s\n", cfg.YNAB.BudgetID)
	} else {
		fmt.Println("    Budget ID: not configured")
	}
	if cfg.YNAB.BaseURL != "" {
		fmt.Printf("    Base URL:  %s\n", cfg.YNAB.BaseURL)
	}
	fmt.Println()

	fmt.Println("  [Simulations]")
	fmt.Printf("    Folder: %s\n", cfg.SimulationsDir())
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Printf("    Snapshot cache: %s\n", config.SnapshotPath())
	fmt.Println()
	fmt.Println("  Run `budgetcast setup` to reconfigure.")
	return nil
}

func maskToken(token string) string {
	if len(token) > 12 {
		return token[:4] + "..." + token[len(token)-4:]
	}
	if len(token) > 4 {
		return token[:4] + "..."
	}
	return "****"
}
