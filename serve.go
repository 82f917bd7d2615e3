package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/friday/internal/llm"
	"github.com/yourusername/friday/internal/metrics"
	"github.com/yourusername/friday/internal/proxy"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the conversational proxy in front of the language model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), listen)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (overrides proxy.listen)")
	return cmd
}

func runServe(ctx context.Context, listen string) error {
	a, err := setup(true)
	if err != nil {
		return err
	}
	defer a.close()

	if listen != "" {
		a.cfg.Proxy.Listen = listen
	}

	gen, err := llm.New(ctx, a.cfg.LLM, a.log.Component("llm"))
	if err != nil {
		return err
	}

	server := proxy.NewServer(a.cfg.Proxy, gen, metrics.New(), a.log.Component("proxy"))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-ctx.Done()
		l := a.log.Component("proxy")
		l.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
