package filename

import (
	"context"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/utils"
	"github.com/sirupsen/logrus"
)

var (
	seasonEpisodePattern = regexp.MustCompile(`(?i)S(\d{2})E(\d{2})`)
	crossPattern         = regexp.MustCompile(`(\d{1,2})x(\d{1,2})`)
	extensionPattern     = regexp.MustCompile(`^\.[A-Za-z0-9]{1,4}$`)
	separatorReplacer    = strings.NewReplacer(".", " ", "_", " ", "-", " ")
)

// Episode is a show title with season and episode numbers
type Episode struct {
	Show    string
	Season  string
	Episode string
}

// Movie is a title with its release year
type Movie struct {
	Title string
	Year  int
}

// Guesser asks a remote service what a filename refers to
type Guesser interface {
	Guess(ctx context.Context, filename string) (*models.Guess, error)
}

// Parse extracts show, season and episode from a file name.
// Directories and the extension are ignored. Numbers lose zero padding.
// The show is the text before the match and may be empty.
func Parse(name string) (Episode, bool) {
	base := StripExtension(filepath.Base(name))

	for _, pattern := range []*regexp.Regexp{seasonEpisodePattern, crossPattern} {
		loc := pattern.FindStringSubmatchIndex(base)
		if loc == nil {
			continue
		}

		return Episode{
			Show:    cleanTitle(base[:loc[0]]),
			Season:  trimNumber(base[loc[2]:loc[3]]),
			Episode: trimNumber(base[loc[4]:loc[5]]),
		}, true
	}

	return Episode{}, false
}

// ParseMovie extracts a title and year from a release style file name.
// The title is the text before the last standalone year.
func ParseMovie(name string) (Movie, bool) {
	base := StripExtension(filepath.Base(name))

	year, at := utils.ExtractYear(base)
	if at < 0 {
		return Movie{}, false
	}
	title := strings.TrimRight(cleanTitle(base[:at]), " ([{")
	if title == "" {
		return Movie{}, false
	}
	return Movie{Title: title, Year: year}, true
}

func cleanTitle(s string) string {
	return strings.Join(strings.Fields(separatorReplacer.Replace(s)), " ")
}

// StripExtension removes a short trailing extension such as ".mkv".
// Dotted release names like "Show.S01E02" keep their last segment.
func StripExtension(name string) string {
	ext := filepath.Ext(name)
	if extensionPattern.MatchString(ext) {
		return strings.TrimSuffix(name, ext)
	}
	return name
}

func trimNumber(digits string) string {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return digits
	}
	return strconv.Itoa(n)
}

// Parser combines the local patterns with a remote guess fallback
type Parser struct {
	guesser Guesser
	logger  *logrus.Logger
}

// NewParser creates a new filename parser. guesser may be nil.
func NewParser(guesser Guesser, logger *logrus.Logger) *Parser {
	return &Parser{
		guesser: guesser,
		logger:  logger,
	}
}

// Resolve parses name locally, asks the remote guesser when no episode
// pattern names a show, and finally tries a local title and year parse.
// It returns nil when none produced a title.
func (p *Parser) Resolve(ctx context.Context, name string) *models.Guess {
	if name == "" {
		return nil
	}

	episode, ok := Parse(name)
	if ok && episode.Show != "" {
		p.logger.WithFields(logrus.Fields{
			"show":    episode.Show,
			"season":  episode.Season,
			"episode": episode.Episode,
		}).Debug("Parsed episode from filename")

		guess := &models.Guess{Type: models.MediaTypeEpisode, Title: episode.Show}
		if season, err := strconv.Atoi(episode.Season); err == nil {
			guess.Season = &season
		}
		if number, err := strconv.Atoi(episode.Episode); err == nil {
			guess.Episode = &number
		}
		return guess
	}
	if ok {
		p.logger.WithField("filename", filepath.Base(name)).Debug("Episode pattern without show title")
	}

	if guess := p.guess(ctx, name); guess != nil {
		return guess
	}

	movie, ok := ParseMovie(name)
	if !ok {
		return nil
	}
	p.logger.WithFields(logrus.Fields{
		"title": movie.Title,
		"year":  movie.Year,
	}).Debug("Parsed movie from filename")

	year := movie.Year
	return &models.Guess{Type: models.MediaTypeMovie, Title: movie.Title, Year: &year}
}

func (p *Parser) guess(ctx context.Context, name string) *models.Guess {
	if p.guesser == nil {
		return nil
	}

	guess, err := p.guesser.Guess(ctx, filepath.Base(name))
	if err != nil {
		p.logger.WithError(err).WithField("filename", filepath.Base(name)).Warn("Remote filename guess failed")
		return nil
	}
	if guess == nil || guess.Title == "" {
		return nil
	}

	p.logger.WithFields(logrus.Fields{
		"type":  guess.Type,
		"title": guess.Title,
	}).Debug("Remote guess resolved filename")
	return guess
}
