package identity

import (
	"context"
	"strings"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/utils"
)

// LibraryQuerier runs (cached) queries against the media library
type LibraryQuerier interface {
	QueryInto(ctx context.Context, method string, params interface{}, out interface{}) bool
}

// DefaultSearchLimit bounds the page fetched by title searches
const DefaultSearchLimit = 500

var (
	movieProperties = []string{"title", "originaltitle", "year", "imdbnumber", "uniqueid", "file"}
	showProperties  = []string{"title", "originaltitle", "year", "imdbnumber", "uniqueid", "episodeguide"}
)

// libraryItem is the subset of a library movie or show we read
type libraryItem struct {
	Title         string            `json:"title"`
	OriginalTitle string            `json:"originaltitle"`
	Year          int               `json:"year"`
	IMDbNumber    string            `json:"imdbnumber"`
	UniqueID      map[string]string `json:"uniqueid"`
	EpisodeGuide  string            `json:"episodeguide"`
	File          string            `json:"file"`
}

func (i libraryItem) imdb() *int {
	if id, ok := ParseIMDb(i.UniqueID["imdb"]); ok {
		return &id
	}
	return idPtr(ParseIMDb(i.IMDbNumber))
}

func (i libraryItem) tmdb() *int {
	if id, ok := ParseTMDb(i.UniqueID["tmdb"]); ok {
		return &id
	}
	return idPtr(DecodeEpisodeGuide(i.EpisodeGuide))
}

type searchKind int

const (
	searchMovies searchKind = iota
	searchShows
)

func movieByID(ctx context.Context, lib LibraryQuerier, movieID int) (libraryItem, bool) {
	var resp struct {
		MovieDetails *libraryItem `json:"moviedetails"`
	}
	params := map[string]interface{}{"movieid": movieID, "properties": movieProperties}
	if !lib.QueryInto(ctx, "VideoLibrary.GetMovieDetails", params, &resp) || resp.MovieDetails == nil {
		return libraryItem{}, false
	}
	return *resp.MovieDetails, true
}

func showByID(ctx context.Context, lib LibraryQuerier, showID int) (libraryItem, bool) {
	var resp struct {
		TVShowDetails *libraryItem `json:"tvshowdetails"`
	}
	params := map[string]interface{}{"tvshowid": showID, "properties": showProperties}
	if !lib.QueryInto(ctx, "VideoLibrary.GetTVShowDetails", params, &resp) || resp.TVShowDetails == nil {
		return libraryItem{}, false
	}
	return *resp.TVShowDetails, true
}

func movieByTitle(ctx context.Context, lib LibraryQuerier, title string, year *int, limit int) (libraryItem, bool) {
	var resp struct {
		Movies []libraryItem `json:"movies"`
	}
	if !lib.QueryInto(ctx, "VideoLibrary.GetMovies", pageParams(movieProperties, limit), &resp) {
		return libraryItem{}, false
	}
	return bestMatch(resp.Movies, title, year, searchMovies)
}

func showByTitle(ctx context.Context, lib LibraryQuerier, title string, year *int, limit int) (libraryItem, bool) {
	var resp struct {
		TVShows []libraryItem `json:"tvshows"`
	}
	if !lib.QueryInto(ctx, "VideoLibrary.GetTVShows", pageParams(showProperties, limit), &resp) {
		return libraryItem{}, false
	}
	return bestMatch(resp.TVShows, title, year, searchShows)
}

func pageParams(properties []string, limit int) map[string]interface{} {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return map[string]interface{}{
		"properties": properties,
		"limits":     map[string]int{"start": 0, "end": limit},
	}
}

// bestMatch keeps entries whose title or original title overlaps the
// search title as a substring (either way, case-insensitive), then scores
// them. Ties keep the first entry seen.
func bestMatch(items []libraryItem, title string, year *int, kind searchKind) (libraryItem, bool) {
	needle := strings.ToLower(strings.TrimSpace(title))
	if needle == "" {
		return libraryItem{}, false
	}

	var candidates []libraryItem
	for _, item := range items {
		if overlaps(needle, item.Title) || overlaps(needle, item.OriginalTitle) {
			candidates = append(candidates, item)
		}
	}

	switch len(candidates) {
	case 0:
		return libraryItem{}, false
	case 1:
		return candidates[0], true
	}

	best := candidates[0]
	bestScore := matchScore(best, needle, year, kind)
	for _, item := range candidates[1:] {
		if score := matchScore(item, needle, year, kind); score > bestScore {
			best, bestScore = item, score
		}
	}
	return best, true
}

func overlaps(needle, candidate string) bool {
	c := strings.ToLower(strings.TrimSpace(candidate))
	if c == "" {
		return false
	}
	return strings.Contains(c, needle) || strings.Contains(needle, c)
}

// matchScore is the similarity (0-100) plus exact-title and year bonuses
func matchScore(item libraryItem, needle string, year *int, kind searchKind) float64 {
	title := strings.ToLower(item.Title)
	original := strings.ToLower(item.OriginalTitle)

	score := utils.Similarity(needle, title)
	if original != "" {
		if s := utils.Similarity(needle, original); s > score {
			score = s
		}
	}
	score *= 100

	if needle == title || (original != "" && needle == original) {
		score += 50
	}

	if year != nil && item.Year > 0 {
		score += yearBonus(*year-item.Year, kind)
	}
	return score
}

func yearBonus(delta int, kind searchKind) float64 {
	if delta < 0 {
		delta = -delta
	}
	if kind == searchShows {
		switch {
		case delta == 0:
			return 25
		case delta <= 2:
			return 10
		}
		return 0
	}
	switch delta {
	case 0:
		return 25
	case 1:
		return 15
	case 2:
		return 5
	}
	return 0
}
