package identity

import (
	"testing"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/config"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeSingleSurvivor(t *testing.T) {
	q := models.MediaQuery{
		TVShowTitle:  "Show",
		ParentIMDbID: models.IntPtr(944947),
		ParentTMDbID: models.IntPtr(1399),
		IMDbID:       models.IntPtr(1480055),
		TMDbID:       models.IntPtr(63056),
	}

	imdb := Normalize(q, DefaultPolicy)
	assert.Equal(t, 944947, *imdb.ParentIMDbID)
	assert.Nil(t, imdb.ParentTMDbID)
	assert.Nil(t, imdb.IMDbID)
	assert.Nil(t, imdb.TMDbID)

	tmdb := Normalize(q, Policy{Prefer: config.PreferTMDb})
	assert.Nil(t, tmdb.ParentIMDbID)
	assert.Equal(t, 1399, *tmdb.ParentTMDbID)
	assert.Nil(t, tmdb.IMDbID)

	// The input is not modified.
	assert.NotNil(t, q.ParentTMDbID)
}

func TestNormalizeDropsImplausibleIDs(t *testing.T) {
	q := models.MediaQuery{
		TVShowTitle:  "Show",
		ParentIMDbID: models.IntPtr(0),
		ParentTMDbID: models.IntPtr(-4),
		IMDbID:       models.IntPtr(123456789),
		TMDbID:       models.IntPtr(63056),
	}

	got := Normalize(q, DefaultPolicy)
	assert.Nil(t, got.ParentIMDbID)
	assert.Nil(t, got.ParentTMDbID)
	assert.Nil(t, got.IMDbID)
	assert.Equal(t, 63056, *got.TMDbID)
	assert.Equal(t, models.StrategyEpisodeTMDb, got.Strategy())
}

func TestNormalizeMovieKeepsYearAndDropsParents(t *testing.T) {
	q := models.MediaQuery{
		OriginalTitle: "Film",
		Year:          models.IntPtr(1999),
		ParentIMDbID:  models.IntPtr(944947),
		IMDbID:        models.IntPtr(133093),
		TMDbID:        models.IntPtr(603),
	}

	got := Normalize(q, DefaultPolicy)
	assert.Equal(t, 1999, *got.Year)
	assert.Nil(t, got.ParentIMDbID)
	assert.Equal(t, 133093, *got.IMDbID)
	assert.Nil(t, got.TMDbID)
}

func TestNormalizeSpecial(t *testing.T) {
	tests := []struct {
		season, episode         string
		wantSeason, wantEpisode string
	}{
		{"1", "5", "1", "5"},
		{"3", "S2", "0", "2"},
		{"", "s1", "0", "1"},
		{"2", "", "2", ""},
	}

	for _, tt := range tests {
		season, episode := normalizeSpecial(tt.season, tt.episode)
		assert.Equal(t, tt.wantSeason, season, tt.episode)
		assert.Equal(t, tt.wantEpisode, episode, tt.episode)
	}
}

func TestPatchApply(t *testing.T) {
	q := models.MediaQuery{TVShowTitle: "Show", IMDbID: models.IntPtr(1)}

	filled := Patch{TVShowTitle: "Other", IMDbID: models.IntPtr(2), SeasonNumber: "3"}.Apply(q)
	assert.Equal(t, "Show", filled.TVShowTitle)
	assert.Equal(t, 1, *filled.IMDbID)
	assert.Equal(t, "3", filled.SeasonNumber)

	overridden := Patch{IMDbID: models.IntPtr(2), Override: true}.Apply(q)
	assert.Equal(t, 2, *overridden.IMDbID)
	assert.Equal(t, 1, *q.IMDbID)

	assert.True(t, Patch{Override: true}.IsEmpty())
	assert.False(t, Patch{FilePath: "/x"}.IsEmpty())
}

func TestPatchReplaceEpisodeIDs(t *testing.T) {
	q := models.MediaQuery{TVShowTitle: "Show", IMDbID: models.IntPtr(1111111), ParentTMDbID: models.IntPtr(9)}

	replaced := Patch{TMDbID: models.IntPtr(424242), Override: true, ReplaceEpisodeIDs: true}.Apply(q)
	assert.Nil(t, replaced.IMDbID)
	assert.Equal(t, 424242, *replaced.TMDbID)
	assert.Equal(t, 9, *replaced.ParentTMDbID)

	untouched := Patch{Override: true, ReplaceEpisodeIDs: true}.Apply(q)
	assert.Equal(t, 1111111, *untouched.IMDbID)
}
