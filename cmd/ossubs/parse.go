package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/filename"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse FILENAME...",
		Short: "Extract show and episode, or title and year, from file names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"File", "Show", "Season", "Episode", "Movie", "Year"})
			for _, name := range args {
				row := table.Row{name, "-", "-", "-", "-", "-"}
				if episode, ok := filename.Parse(name); ok {
					row[1], row[2], row[3] = orDash(episode.Show), episode.Season, episode.Episode
				} else if movie, ok := filename.ParseMovie(name); ok {
					row[4], row[5] = movie.Title, movie.Year
				}
				t.AppendRow(row)
			}
			t.Render()
			return nil
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
