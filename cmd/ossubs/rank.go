package main

import (
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/ranking"
	"github.com/spf13/cobra"
)

func newRankCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "rank --file PLAYING_FILE RELEASE...",
		Short: "Show how release labels rank against a playing file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates := make([]models.SubtitleCandidate, len(args))
			for i, release := range args {
				candidates[i] = models.SubtitleCandidate{FileID: int64(i + 1), Release: release}
			}
			renderScores(cmd.OutOrStdout(), ranking.Score(candidates, file))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "playing file name")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
