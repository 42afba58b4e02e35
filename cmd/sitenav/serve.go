package main

import (
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mchmarny/sitenav/pkg/logger"
	"github.com/mchmarny/sitenav/pkg/metric"
	"github.com/mchmarny/sitenav/pkg/server"
	"github.com/mchmarny/sitenav/pkg/site"
)

func serveCmd() *cobra.Command {
	var (
		port    int
		siteDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site with the header rendered per request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if siteDir != "" {
				cfg.SiteDir = siteDir
			}

			reg := prometheus.NewRegistry()
			set := metric.NewSet(reg)

			r := cfg.Renderer()
			r.Metrics = &set

			srv := server.New(append(cfg.ServerOptions(),
				server.WithRegistry(reg),
				server.WithPrometheusMetrics(),
				server.WithSimpleHealth(),
				server.WithErrorLog(logger.NewLogLogger(logger.ParseLogLevel(effectiveLogLevel(cfg)), false)),
				server.WithHandler("/menu", r.Menu.Handler()),
				server.WithHandler("/", site.Handler(cfg.SiteDir, r)),
			)...)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Serve(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", server.DefaultPort, "port to listen on (overrides port)")
	cmd.Flags().StringVar(&siteDir, "site", "", "site directory (overrides site_dir)")

	return cmd
}
