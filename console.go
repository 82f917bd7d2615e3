package main

import (
	"github.com/spf13/cobra"

	"github.com/yourusername/friday/internal/ui"
)

func consoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Chat with F.R.I.D.A.Y. in a line-oriented console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(false)
			if err != nil {
				return err
			}
			defer a.close()

			return ui.RunPrompt(cmd.Context(), a.deps())
		},
	}
}
