package models

import (
	"errors"
	"fmt"
)

// MediaQuery is the canonical descriptor sent to the subtitle provider.
// Empty strings and nil pointers mean "unknown".
type MediaQuery struct {
	Query         string `json:"query"`
	Year          *int   `json:"year,omitempty"`
	SeasonNumber  string `json:"season_number,omitempty"`
	EpisodeNumber string `json:"episode_number,omitempty"`
	TVShowTitle   string `json:"tv_show_title,omitempty"`
	OriginalTitle string `json:"original_title,omitempty"`
	ParentIMDbID  *int   `json:"parent_imdb_id,omitempty"`
	ParentTMDbID  *int   `json:"parent_tmdb_id,omitempty"`
	IMDbID        *int   `json:"imdb_id,omitempty"`
	TMDbID        *int   `json:"tmdb_id,omitempty"`
	FilePath      string `json:"file_path,omitempty"`
}

// maxIMDbID is the largest 8 digit IMDb payload
const maxIMDbID = 99999999

// IsTV reports whether the query targets a TV episode
func (q *MediaQuery) IsTV() bool {
	return q.TVShowTitle != ""
}

// Strategy reports which identifier strategy is active
func (q *MediaQuery) Strategy() Strategy {
	switch {
	case q.ParentIMDbID != nil:
		return StrategyParentIMDb
	case q.ParentTMDbID != nil:
		return StrategyParentTMDb
	case q.IsTV() && q.IMDbID != nil:
		return StrategyEpisodeIMDb
	case q.IsTV() && q.TMDbID != nil:
		return StrategyEpisodeTMDb
	case q.IMDbID != nil:
		return StrategyMovieIMDb
	case q.TMDbID != nil:
		return StrategyMovieTMDb
	default:
		return StrategyTitleOnly
	}
}

// Clone returns a deep copy of the query
func (q MediaQuery) Clone() MediaQuery {
	out := q
	out.Year = clonePtr(q.Year)
	out.ParentIMDbID = clonePtr(q.ParentIMDbID)
	out.ParentTMDbID = clonePtr(q.ParentTMDbID)
	out.IMDbID = clonePtr(q.IMDbID)
	out.TMDbID = clonePtr(q.TMDbID)
	return out
}

// Validate checks the invariants every resolved query must satisfy
func (q *MediaQuery) Validate() error {
	var errs []error

	if q.ParentIMDbID != nil && q.ParentTMDbID != nil {
		errs = append(errs, errors.New("both parent IMDb and parent TMDb ids are set"))
	}
	if q.IMDbID != nil && q.TMDbID != nil {
		errs = append(errs, errors.New("both IMDb and TMDb ids are set"))
	}
	hasParent := q.ParentIMDbID != nil || q.ParentTMDbID != nil
	hasEpisode := q.IMDbID != nil || q.TMDbID != nil
	if q.IsTV() && hasParent && hasEpisode {
		errs = append(errs, errors.New("parent and episode ids are mixed"))
	}
	if !q.IsTV() && hasParent {
		errs = append(errs, errors.New("parent ids set on a non TV query"))
	}
	if q.Query == "" {
		errs = append(errs, errors.New("query is empty"))
	}
	for _, f := range []struct {
		name string
		id   *int
	}{{"parent_imdb_id", q.ParentIMDbID}, {"imdb_id", q.IMDbID}} {
		if f.id != nil && (*f.id <= 0 || *f.id > maxIMDbID) {
			errs = append(errs, fmt.Errorf("%s %d is not a plausible IMDb id", f.name, *f.id))
		}
	}
	for _, f := range []struct {
		name string
		id   *int
	}{{"parent_tmdb_id", q.ParentTMDbID}, {"tmdb_id", q.TMDbID}} {
		if f.id != nil && *f.id <= 0 {
			errs = append(errs, fmt.Errorf("%s %d is not a plausible TMDb id", f.name, *f.id))
		}
	}

	return errors.Join(errs...)
}

func clonePtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
