package controllers

import (
	"context"
	"testing"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/config"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/filename"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/identity"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/ranking"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/services/opensubtitles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSearchController(provider *fakeProvider, lib *emptyLibrary, player identity.PlayerSource) *SearchController {
	logger := testLogger()
	cfg := &config.Config{
		Languages:         "English",
		HearingImpaired:   "exclude",
		ForeignPartsOnly:  "include",
		MachineTranslated: "exclude",
		AITranslated:      "include",
	}
	providers := identity.DefaultProviders(lib, filename.NewParser(nil, logger), 50, logger)
	reconciler := identity.NewReconciler(providers, identity.DefaultPolicy, nil, logger)
	return NewSearchController(player, reconciler, provider, ranking.NewRanker(nil, logger), cfg, logger)
}

func matrixPlayer() identity.StaticSource {
	return identity.StaticSource{
		Labels: map[string]string{
			identity.LabelOriginalTitle: "The Matrix",
			identity.LabelYear:          "1999",
			identity.LabelIMDbNumber:    "tt0133093",
		},
		File: "/movies/The.Matrix.1999.1080p.BluRay.x264-GROUP.mkv",
	}
}

func TestSearchResolvesAndRanks(t *testing.T) {
	provider := &fakeProvider{candidates: []models.SubtitleCandidate{
		{FileID: 1, Language: "en", Release: "The.Matrix.1999.720p.WEB-DL.x264", FeatureTitle: "The Matrix", Rating: 6},
		{FileID: 2, Language: "en", Release: "The.Matrix.1999.1080p.BluRay.x264-GROUP", FeatureTitle: "The Matrix", Rating: 8},
		{FileID: 3, Language: "en", Release: "The.Matrix.1999.DVDRip.XviD", FeatureTitle: "The Matrix", Rating: 10},
	}}
	lib := &emptyLibrary{}
	ctrl := newTestSearchController(provider, lib, matrixPlayer())

	result, err := ctrl.Search(context.Background(), SearchRequest{PreferredLanguage: "French"})
	require.NoError(t, err)

	require.Len(t, provider.searches, 1)
	params := provider.searches[0]
	assert.Equal(t, "The Matrix", params.Query.Query)
	assert.Equal(t, 133093, *params.Query.IMDbID)
	assert.Equal(t, "en,fr", params.Languages)
	assert.Equal(t, "exclude", params.HearingImpaired)
	assert.Equal(t, "exclude", params.MachineTranslated)
	assert.Empty(t, params.MovieHash)

	require.Len(t, result.Items, 3)
	assert.Equal(t, int64(2), result.Items[0].FileID)
	assert.Equal(t, int64(1), result.Items[1].FileID)
	assert.Equal(t, int64(3), result.Items[2].FileID)
	assert.Equal(t, "English", result.Items[0].Label)
	assert.Equal(t, []string{"en", "fr"}, result.Languages)
	assert.Equal(t, 0, lib.calls)
}

func TestSearchManualQuerySkipsResolution(t *testing.T) {
	provider := &fakeProvider{}
	ctrl := newTestSearchController(provider, &emptyLibrary{}, matrixPlayer())

	result, err := ctrl.Search(context.Background(), SearchRequest{Query: " heat 1995 ", Languages: "German"})
	require.NoError(t, err)

	require.Len(t, provider.searches, 1)
	assert.Equal(t, models.MediaQuery{Query: "heat 1995"}, provider.searches[0].Query)
	assert.Equal(t, "de", provider.searches[0].Languages)
	assert.Empty(t, result.Items)
	assert.Equal(t, matrixPlayer().File, result.PlayingFile)
}

func TestSearchRequestPlayerOverride(t *testing.T) {
	provider := &fakeProvider{}
	ctrl := newTestSearchController(provider, &emptyLibrary{}, identity.StaticSource{})

	_, err := ctrl.Search(context.Background(), SearchRequest{Player: matrixPlayer()})
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", provider.searches[0].Query.Query)
}

func TestSearchProviderError(t *testing.T) {
	provider := &fakeProvider{searchErr: &opensubtitles.Error{Kind: opensubtitles.KindTooManyRequests, StatusCode: 429}}
	ctrl := newTestSearchController(provider, &emptyLibrary{}, matrixPlayer())

	_, err := ctrl.Search(context.Background(), SearchRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, opensubtitles.ErrTooManyRequests)
}

func TestResolveUsesControllerPlayer(t *testing.T) {
	ctrl := newTestSearchController(&fakeProvider{}, &emptyLibrary{}, matrixPlayer())

	q := ctrl.Resolve(context.Background(), nil)
	assert.Equal(t, models.StrategyMovieIMDb, q.Strategy())
	assert.Equal(t, 1999, *q.Year)
}
