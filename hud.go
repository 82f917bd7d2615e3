package main

import (
	"github.com/spf13/cobra"

	"github.com/yourusername/friday/internal/ui"
)

func hudCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hud",
		Short: "Open the full-screen heads-up display",
		Args:  cobra.NoArgs,
		RunE:  runHUD,
	}
}

func runHUD(cmd *cobra.Command, args []string) error {
	a, err := setup(false)
	if err != nil {
		return err
	}
	defer a.close()

	return ui.RunHUD(cmd.Context(), a.deps())
}
