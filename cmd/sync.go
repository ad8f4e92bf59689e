package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch budget data from the API and refresh the local snapshot",
	RunE:  runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(_ *cobra.Command, _ []string) error {
	snap, err := loadSnapshot(context.Background(), true)
	if err != nil {
		return err
	}

	fmt.Printf("\n  Synced budget %s\n", snap.BudgetID)
	fmt.Printf("  %d accounts, %d categories, %d scheduled transactions\n\n",
		len(snap.Accounts), len(snap.Categories), len(snap.Scheduled))
	return nil
}
