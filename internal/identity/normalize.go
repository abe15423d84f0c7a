package identity

import (
	"strings"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/config"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
)

// Policy decides which id survives when both sources are known
type Policy struct {
	Prefer string // config.PreferIMDb or config.PreferTMDb
}

// DefaultPolicy keeps IMDb ids
var DefaultPolicy = Policy{Prefer: config.PreferIMDb}

// survivor keeps one of an (IMDb, TMDb) pair
func (p Policy) survivor(imdb, tmdb *int) (*int, *int) {
	if imdb == nil || tmdb == nil {
		return imdb, tmdb
	}
	if p.Prefer == config.PreferTMDb {
		return nil, tmdb
	}
	return imdb, nil
}

// Normalize enforces the id invariants on a folded query: implausible ids
// are dropped, each id pair keeps a single survivor, exactly one strategy
// stays active, TV items lose their year, and specials move to season 0.
// The query text is left alone.
func Normalize(q models.MediaQuery, policy Policy) models.MediaQuery {
	out := q.Clone()

	out.ParentIMDbID = plausibleIMDb(out.ParentIMDbID)
	out.IMDbID = plausibleIMDb(out.IMDbID)
	out.ParentTMDbID = plausibleTMDb(out.ParentTMDbID)
	out.TMDbID = plausibleTMDb(out.TMDbID)

	out.ParentIMDbID, out.ParentTMDbID = policy.survivor(out.ParentIMDbID, out.ParentTMDbID)
	out.IMDbID, out.TMDbID = policy.survivor(out.IMDbID, out.TMDbID)

	if !out.IsTV() {
		out.ParentIMDbID, out.ParentTMDbID = nil, nil
		return out
	}

	// A parent id searches the whole series; episode ids would contradict it.
	if out.ParentIMDbID != nil || out.ParentTMDbID != nil {
		out.IMDbID, out.TMDbID = nil, nil
	}

	out.Year = nil
	out.SeasonNumber, out.EpisodeNumber = normalizeSpecial(out.SeasonNumber, out.EpisodeNumber)
	return out
}

// normalizeSpecial maps episode labels like "S1" to season 0
func normalizeSpecial(season, episode string) (string, string) {
	if !strings.ContainsAny(episode, "sS") {
		return season, episode
	}
	runes := []rune(episode)
	return "0", string(runes[len(runes)-1])
}

func plausibleIMDb(id *int) *int {
	if id == nil || *id <= 0 || *id > 99999999 {
		return nil
	}
	return id
}

func plausibleTMDb(id *int) *int {
	if id == nil || *id <= 0 {
		return nil
	}
	return id
}
