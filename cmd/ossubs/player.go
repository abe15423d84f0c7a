package main

import (
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/identity"
	"github.com/spf13/cobra"
)

// playerFlags describe a playing item on the command line instead of
// asking Kodi
type playerFlags struct {
	file          string
	title         string
	originalTitle string
	show          string
	season        string
	episode       string
	year          string
	imdb          string
	tmdb          string
}

func (f *playerFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.file, "file", "", "path of the playing file")
	flags.StringVar(&f.title, "title", "", "item title")
	flags.StringVar(&f.originalTitle, "original-title", "", "original title")
	flags.StringVar(&f.show, "show", "", "TV show title")
	flags.StringVar(&f.season, "season", "", "season number")
	flags.StringVar(&f.episode, "episode", "", "episode number")
	flags.StringVar(&f.year, "year", "", "release year")
	flags.StringVar(&f.imdb, "imdb", "", "IMDb id of the item (series id for episodes)")
	flags.StringVar(&f.tmdb, "tmdb", "", "TMDb id of the item")
}

// source returns a static player when any flag was given
func (f *playerFlags) source() (identity.PlayerSource, bool) {
	labels := map[string]string{
		identity.LabelTitle:         f.title,
		identity.LabelOriginalTitle: f.originalTitle,
		identity.LabelTVShowTitle:   f.show,
		identity.LabelSeason:        f.season,
		identity.LabelEpisode:       f.episode,
		identity.LabelYear:          f.year,
		identity.LabelIMDbNumber:    f.imdb,
		identity.LabelUniqueTMDb:    f.tmdb,
	}

	set := f.file != ""
	for _, v := range labels {
		set = set || v != ""
	}
	if !set {
		return nil, false
	}
	return identity.StaticSource{Labels: labels, File: f.file}, true
}
