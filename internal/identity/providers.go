package identity

import (
	"context"
	"strconv"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/utils"
	"github.com/sirupsen/logrus"
)

// SignalProvider turns one source of evidence into a patch. It sees the
// query folded so far and returns an empty patch when it has nothing to add.
type SignalProvider interface {
	Name() string
	Provide(ctx context.Context, current models.MediaQuery, signals Signals) Patch
}

// FilenameResolver identifies a file from its name
type FilenameResolver interface {
	Resolve(ctx context.Context, name string) *models.Guess
}

// DefaultProviders returns the provider chain in precedence order
func DefaultProviders(lib LibraryQuerier, files FilenameResolver, searchLimit int, logger *logrus.Logger) []SignalProvider {
	return []SignalProvider{
		playerFields{},
		filenameFallback{files: files},
		showIDsFromLabels{},
		episodeIDsFromLabels{},
		showIDsFromLibrary{lib: lib, limit: searchLimit, logger: logger},
		episodeIDOverride{},
		movieIDsFromLabels{},
		movieFromLibrary{lib: lib, limit: searchLimit, logger: logger},
	}
}

// playerFields copies the descriptive labels
type playerFields struct{}

func (playerFields) Name() string { return "player_fields" }

func (playerFields) Provide(ctx context.Context, current models.MediaQuery, signals Signals) Patch {
	patch := Patch{
		SeasonNumber:  signals.Label(LabelSeason),
		EpisodeNumber: signals.Label(LabelEpisode),
		TVShowTitle:   utils.NormalizeString(signals.Label(LabelTVShowTitle)),
		OriginalTitle: utils.NormalizeString(signals.Label(LabelOriginalTitle)),
	}
	if year, ok := utils.ParsePositiveInt(signals.Label(LabelYear)); ok {
		patch.Year = &year
	}
	return patch
}

// filenameFallback identifies non-library playback from the file name
type filenameFallback struct {
	files FilenameResolver
}

func (filenameFallback) Name() string { return "filename" }

func (p filenameFallback) Provide(ctx context.Context, current models.MediaQuery, signals Signals) Patch {
	if p.files == nil || signals.HasStructured() || signals.PlayingFile == "" {
		return Patch{}
	}

	guess := p.files.Resolve(ctx, signals.PlayingFile)
	if guess == nil {
		return Patch{}
	}

	if guess.Type == models.MediaTypeEpisode {
		patch := Patch{TVShowTitle: utils.NormalizeString(guess.Title)}
		if guess.Season != nil {
			patch.SeasonNumber = strconv.Itoa(*guess.Season)
		}
		if guess.Episode != nil {
			patch.EpisodeNumber = strconv.Itoa(*guess.Episode)
		}
		return patch
	}

	return Patch{
		OriginalTitle: utils.NormalizeString(guess.Title),
		Year:          guess.Year,
	}
}

// showIDsFromLabels reads series ids straight from the player
type showIDsFromLabels struct{}

func (showIDsFromLabels) Name() string { return "show_ids_labels" }

func (showIDsFromLabels) Provide(ctx context.Context, current models.MediaQuery, signals Signals) Patch {
	if !current.IsTV() {
		return Patch{}
	}
	return Patch{
		ParentIMDbID: idPtr(ParseIMDb(signals.Label(LabelIMDbNumber))),
		ParentTMDbID: idPtr(ParseTMDb(signals.Label(LabelShowTMDb))),
	}
}

// episodeIDsFromLabels reads the playing item's own ids when no series id
// is known. These identify the episode and never fill parent fields.
type episodeIDsFromLabels struct{}

func (episodeIDsFromLabels) Name() string { return "episode_ids_labels" }

func (episodeIDsFromLabels) Provide(ctx context.Context, current models.MediaQuery, signals Signals) Patch {
	if !current.IsTV() || hasParent(current) {
		return Patch{}
	}
	return Patch{
		IMDbID: idPtr(ParseIMDb(signals.Label(LabelUniqueIMDb))),
		TMDbID: idPtr(ParseTMDb(signals.Label(LabelUniqueTMDb))),
	}
}

// showIDsFromLibrary looks the series up in the library, by database id
// when the player gave one and by title otherwise
type showIDsFromLibrary struct {
	lib    LibraryQuerier
	limit  int
	logger *logrus.Logger
}

func (showIDsFromLibrary) Name() string { return "show_ids_library" }

func (p showIDsFromLibrary) Provide(ctx context.Context, current models.MediaQuery, signals Signals) Patch {
	if p.lib == nil || !current.IsTV() || hasParent(current) {
		return Patch{}
	}

	var (
		show  libraryItem
		found bool
	)
	if showID, ok := utils.ParsePositiveInt(signals.Label(LabelTVShowDBID)); ok {
		show, found = showByID(ctx, p.lib, showID)
	} else {
		show, found = showByTitle(ctx, p.lib, current.TVShowTitle, current.Year, p.limit)
	}
	if !found {
		return Patch{}
	}

	patch := Patch{ParentIMDbID: show.imdb(), ParentTMDbID: show.tmdb()}
	p.logger.WithFields(logrus.Fields{
		"show":           current.TVShowTitle,
		"library_title":  show.Title,
		"parent_imdb_id": patch.ParentIMDbID != nil,
		"parent_tmdb_id": patch.ParentTMDbID != nil,
	}).Debug("Resolved series ids from library")
	return patch
}

// episodeIDOverride reads dedicated episode id labels. They replace the
// whole episode id pair found earlier but leave parent fields untouched.
type episodeIDOverride struct{}

func (episodeIDOverride) Name() string { return "episode_id_override" }

func (episodeIDOverride) Provide(ctx context.Context, current models.MediaQuery, signals Signals) Patch {
	if !current.IsTV() {
		return Patch{}
	}
	return Patch{
		IMDbID:            idPtr(ParseIMDb(signals.Label(LabelEpisodeIMDb))),
		TMDbID:            idPtr(ParseTMDb(signals.Label(LabelEpisodeTMDb))),
		Override:          true,
		ReplaceEpisodeIDs: true,
	}
}

// movieIDsFromLabels reads movie ids from the player
type movieIDsFromLabels struct{}

func (movieIDsFromLabels) Name() string { return "movie_ids_labels" }

func (movieIDsFromLabels) Provide(ctx context.Context, current models.MediaQuery, signals Signals) Patch {
	if !isMovie(current) {
		return Patch{}
	}
	imdb := idPtr(ParseIMDb(signals.Label(LabelIMDbNumber)))
	if imdb == nil {
		imdb = idPtr(ParseIMDb(signals.Label(LabelUniqueIMDb)))
	}
	return Patch{
		IMDbID: imdb,
		TMDbID: idPtr(ParseTMDb(signals.Label(LabelUniqueTMDb))),
	}
}

// movieFromLibrary looks the movie up by database id, then by title and year
type movieFromLibrary struct {
	lib    LibraryQuerier
	limit  int
	logger *logrus.Logger
}

func (movieFromLibrary) Name() string { return "movie_library" }

func (p movieFromLibrary) Provide(ctx context.Context, current models.MediaQuery, signals Signals) Patch {
	if p.lib == nil || !isMovie(current) || current.IMDbID != nil || current.TMDbID != nil {
		return Patch{}
	}

	var (
		movie libraryItem
		found bool
	)
	if movieID, ok := utils.ParsePositiveInt(signals.Label(LabelDBID)); ok {
		movie, found = movieByID(ctx, p.lib, movieID)
	}
	if !found {
		movie, found = movieByTitle(ctx, p.lib, current.OriginalTitle, current.Year, p.limit)
	}
	if !found {
		return Patch{}
	}

	p.logger.WithFields(logrus.Fields{
		"title":         current.OriginalTitle,
		"library_title": movie.Title,
		"library_year":  movie.Year,
	}).Debug("Resolved movie from library")

	return Patch{
		IMDbID:   movie.imdb(),
		TMDbID:   movie.tmdb(),
		FilePath: movie.File,
	}
}

func hasParent(q models.MediaQuery) bool {
	return q.ParentIMDbID != nil || q.ParentTMDbID != nil
}

func isMovie(q models.MediaQuery) bool {
	return !q.IsTV() && q.OriginalTitle != ""
}
