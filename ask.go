package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourusername/friday/internal/proxy"
	"github.com/yourusername/friday/internal/renderer"
)

func askCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "ask <prompt>",
		Short: "Send one prompt to the proxy and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(false)
			if err != nil {
				return err
			}
			defer a.close()

			client := proxy.NewClient(a.cfg.Proxy.URL, a.cfg.Proxy.Timeout)
			reply, err := client.Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), reply)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderMarkdown(reply))
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the reply without markdown rendering")
	cmd.AddCommand(&cobra.Command{
		Use:   "health",
		Short: "Check that the proxy is standing by",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(false)
			if err != nil {
				return err
			}
			defer a.close()

			msg, err := proxy.NewClient(a.cfg.Proxy.URL, a.cfg.Proxy.Timeout).Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	})
	return cmd
}
