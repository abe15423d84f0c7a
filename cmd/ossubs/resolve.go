package main

import (
	"fmt"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/app"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/identity"
	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	var (
		player playerFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the media identity of the playing item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			r, cleanup, err := app.InitializeResolver(cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer cleanup()

			var source identity.PlayerSource = r.Kodi
			if static, ok := player.source(); ok {
				source = static
			}

			signals := identity.Collect(cmd.Context(), source, logger)
			q := r.Reconciler.Resolve(cmd.Context(), signals)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), q)
			}
			renderQuery(cmd.OutOrStdout(), q)
			return nil
		},
	}

	player.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
