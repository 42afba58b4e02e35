package main

import (
	"encoding/json"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func renderCmd() *cobra.Command {
	var (
		siteDir string
		outDir  string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write a copy of the site with the header rendered into every page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if siteDir != "" {
				cfg.SiteDir = siteDir
			}
			if outDir != "" {
				cfg.OutDir = outDir
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			res, err := cfg.Renderer().RenderDir(ctx, cfg.SiteDir, cfg.OutDir)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}

	cmd.Flags().StringVar(&siteDir, "site", "", "site directory (overrides site_dir)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (overrides out_dir)")

	return cmd
}
