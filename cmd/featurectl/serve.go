package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/featureconfig/pkg/evalsource"
	"github.com/dmitrymomot/featureconfig/pkg/featureapi"
	"github.com/dmitrymomot/featureconfig/pkg/logger"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		addr    string
		refresh time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagnostics API and keep evaluations fresh",
		Long: `Fetch evaluations, then serve them over HTTP while re-fetching
on an interval. A failed initial fetch is logged and the server starts with
an empty cache.

Examples:
  featurectl serve --addr :8080
  featurectl serve --source redis --refresh 30s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overlay := make(map[string]string)
			if cmd.Flags().Changed("addr") {
				overlay[envPrefix+"HTTP_ADDR"] = addr
			}
			if cmd.Flags().Changed("refresh") {
				overlay[envPrefix+"REFRESH_INTERVAL"] = refresh.String()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := setup(ctx, cmd, flags, overlay)
			if err != nil {
				return err
			}
			defer a.provider.Close()

			initial := a.provider.FetchAsync(ctx)
			if n, err := initial.AwaitContext(ctx); err != nil {
				a.logger.WarnContext(ctx, "initial fetch failed, serving empty cache", logger.Error(err))
			} else {
				a.logger.InfoContext(ctx, "feature evaluations loaded", logger.Count(n))
			}

			opts := []featureapi.Option{featureapi.WithLogger(a.logger)}
			if check := evalsource.Readiness(a.fetcher); check != nil {
				opts = append(opts, featureapi.WithReadinessCheck(check))
			}
			router := featureapi.Router(a.provider, opts...)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return featureapi.ListenAndServe(gctx, a.cfg.Server, router, a.logger)
			})
			g.Go(func() error {
				if err := a.provider.Refresh(gctx, a.cfg.RefreshInterval); !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			})
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&refresh, "refresh", 5*time.Minute, "re-fetch interval")

	return cmd
}
