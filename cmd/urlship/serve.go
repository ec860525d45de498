package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spcloud/urlship/internal/api"
)

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the presigned-urls and device-link endpoints over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.load(cmd); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := c.portsLogger()
			pipeline, err := buildPipeline(ctx, &c.cfg, logger)
			if err != nil {
				return err
			}

			srv := api.NewServer(logger, c.cfg.RequestTimeout)
			srv.Route(api.PathPresignedURLs, api.NewPublishHandler(pipeline, logger))

			if c.cfg.LinkTable != "" {
				registry, err := buildLinkRegistry(ctx, &c.cfg)
				if err != nil {
					return err
				}
				srv.Route(api.PathDeviceLink, api.NewLinkHandler(registry, logger))
			} else {
				c.log.Warn().Msg("link-table not set, /device-link disabled")
			}

			return srv.Serve(ctx, c.cfg.Listen)
		},
	}

	cmd.Flags().StringVar(&c.cfg.Listen, "listen", c.cfg.Listen, "listen address")
	cmd.Flags().DurationVar(&c.cfg.RequestTimeout, "request-timeout", c.cfg.RequestTimeout, "per-request deadline")
	return cmd
}
