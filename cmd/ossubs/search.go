package main

import (
	"fmt"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/app"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/controllers"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var (
		player    playerFlags
		req       controllers.SearchRequest
		asJSON    bool
		showQuery bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search subtitles for the playing item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			a, cleanup, err := app.InitializeApp(cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer cleanup()

			if source, ok := player.source(); ok {
				req.Player = source
			}

			result, err := a.Search.Search(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("%s: %w", controllers.UserMessage(err, a.Provider.HasCredentials()), err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, result)
			}
			if showQuery {
				renderQuery(out, result.Query)
			}
			renderItems(out, result.Items)
			return nil
		},
	}

	player.register(cmd)
	cmd.Flags().StringVarP(&req.Query, "query", "q", "", "manual search text (skips identity resolution)")
	cmd.Flags().StringVar(&req.Languages, "languages", "", "comma separated language names (default SUBTITLE_LANGUAGES)")
	cmd.Flags().StringVar(&req.PreferredLanguage, "preferred-language", "", "preferred language name")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&showQuery, "show-query", false, "print the resolved query before the results")
	return cmd
}
