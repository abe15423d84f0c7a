package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/app"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/controllers"
	"github.com/spf13/cobra"
)

func newDownloadCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download FILE_ID",
		Short: "Download a subtitle by provider file id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || fileID <= 0 {
				return fmt.Errorf("invalid file id %q", args[0])
			}

			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			a, cleanup, err := app.InitializeApp(cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer cleanup()

			record, err := a.Download.Download(cmd.Context(), fileID)
			if err != nil {
				return fmt.Errorf("%s: %w", controllers.UserMessage(err, a.Download.LoggedIn()), err)
			}

			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), record.Path)
				return nil
			}
			if err := os.WriteFile(output, record.Content, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the subtitle to this path")
	return cmd
}
