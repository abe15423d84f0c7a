package identity

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// Info labels read from the player
const (
	LabelTitle         = "VideoPlayer.Title"
	LabelYear          = "VideoPlayer.Year"
	LabelSeason        = "VideoPlayer.Season"
	LabelEpisode       = "VideoPlayer.Episode"
	LabelTVShowTitle   = "VideoPlayer.TVShowTitle"
	LabelOriginalTitle = "VideoPlayer.OriginalTitle"
	LabelTVShowDBID    = "VideoPlayer.TvShowDBID"
	LabelDBID          = "VideoPlayer.DBID"

	// IMDb number of the playing item; Kodi reports the series number for
	// library episodes.
	LabelIMDbNumber = "VideoPlayer.IMDBNumber"
	LabelShowTMDb   = "VideoPlayer.TvShow.UniqueID(tmdb)"

	// Unique ids of the playing item itself.
	LabelUniqueIMDb = "VideoPlayer.UniqueID(imdb)"
	LabelUniqueTMDb = "VideoPlayer.UniqueID(tmdb)"

	// Episode ids set by scrapers that expose them separately.
	LabelEpisodeIMDb = "VideoPlayer.Episode.UniqueID(imdb)"
	LabelEpisodeTMDb = "VideoPlayer.Episode.UniqueID(tmdb)"
)

// SignalLabels lists every label Collect requests
var SignalLabels = []string{
	LabelTitle,
	LabelYear,
	LabelSeason,
	LabelEpisode,
	LabelTVShowTitle,
	LabelOriginalTitle,
	LabelTVShowDBID,
	LabelDBID,
	LabelIMDbNumber,
	LabelShowTMDb,
	LabelUniqueIMDb,
	LabelUniqueTMDb,
	LabelEpisodeIMDb,
	LabelEpisodeTMDb,
}

// PlayerSource exposes the metadata of the item currently playing
type PlayerSource interface {
	InfoLabels(ctx context.Context, keys []string) (map[string]string, error)
	PlayingFile(ctx context.Context) (string, error)
}

// Signals is a snapshot of everything the player reported
type Signals struct {
	Labels      map[string]string
	PlayingFile string
}

// Label returns a trimmed label value, "" when absent
func (s Signals) Label(key string) string {
	return strings.TrimSpace(s.Labels[key])
}

// HasStructured reports whether the player described the item at all.
// Without any of these the item is treated as non-library playback.
func (s Signals) HasStructured() bool {
	for _, key := range []string{LabelTitle, LabelYear, LabelSeason, LabelEpisode, LabelTVShowTitle, LabelOriginalTitle} {
		if s.Label(key) != "" {
			return true
		}
	}
	return false
}

// Collect snapshots the player. Failures leave the affected fields empty.
func Collect(ctx context.Context, source PlayerSource, logger *logrus.Logger) Signals {
	signals := Signals{Labels: map[string]string{}}

	labels, err := source.InfoLabels(ctx, SignalLabels)
	if err != nil {
		logger.WithError(err).Warn("Failed to read player info labels")
	} else {
		signals.Labels = labels
	}

	file, err := source.PlayingFile(ctx)
	if err != nil {
		logger.WithError(err).Warn("Failed to read playing file")
	} else {
		signals.PlayingFile = file
	}

	return signals
}

// StaticSource is a PlayerSource backed by fixed values, for the CLI and tests
type StaticSource struct {
	Labels map[string]string
	File   string
}

// InfoLabels returns the requested labels; unknown keys map to ""
func (s StaticSource) InfoLabels(ctx context.Context, keys []string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		out[key] = s.Labels[key]
	}
	return out, nil
}

// PlayingFile returns the configured path
func (s StaticSource) PlayingFile(ctx context.Context) (string, error) {
	return s.File, nil
}
