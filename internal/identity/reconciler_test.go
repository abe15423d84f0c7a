package identity

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/config"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/filename"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLibrary struct {
	responses map[string]string
	calls     map[string]int
}

func newFakeLibrary(responses map[string]string) *fakeLibrary {
	return &fakeLibrary{responses: responses, calls: map[string]int{}}
}

func (f *fakeLibrary) QueryInto(ctx context.Context, method string, params interface{}, out interface{}) bool {
	f.calls[method]++
	payload, ok := f.responses[method]
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(payload), out) == nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestReconciler(lib LibraryQuerier, policy Policy) *Reconciler {
	logger := quietLogger()
	parser := filename.NewParser(nil, logger)
	return NewReconciler(DefaultProviders(lib, parser, 100, logger), policy, nil, logger)
}

func labels(kv ...string) Signals {
	s := Signals{Labels: map[string]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		s.Labels[kv[i]] = kv[i+1]
	}
	return s
}

const gotShowDetails = `{"tvshowdetails":{
	"title":"Game of Thrones","year":2011,"imdbnumber":"tt0944947",
	"episodeguide":"<episodeguide>{\"tmdb\":\"1399\",\"imdb\":\"tt0944947\"}</episodeguide>"}}`

func TestResolveShowFromLibraryPrefersIMDb(t *testing.T) {
	lib := newFakeLibrary(map[string]string{"VideoLibrary.GetTVShowDetails": gotShowDetails})
	signals := labels(
		LabelTVShowTitle, "Game of Thrones",
		LabelSeason, "2",
		LabelEpisode, "5",
		LabelYear, "2012",
		LabelTVShowDBID, "7",
	)

	q := newTestReconciler(lib, DefaultPolicy).Resolve(context.Background(), signals)

	assert.Equal(t, "Game of Thrones", q.Query)
	require.NotNil(t, q.ParentIMDbID)
	assert.Equal(t, 944947, *q.ParentIMDbID)
	assert.Nil(t, q.ParentTMDbID)
	assert.Nil(t, q.Year)
	assert.Equal(t, "2", q.SeasonNumber)
	assert.Equal(t, "5", q.EpisodeNumber)
	assert.Equal(t, models.StrategyParentIMDb, q.Strategy())
	assert.NoError(t, q.Validate())
}

func TestResolveShowFromLibraryPrefersTMDbByPolicy(t *testing.T) {
	lib := newFakeLibrary(map[string]string{"VideoLibrary.GetTVShowDetails": gotShowDetails})
	signals := labels(LabelTVShowTitle, "Game of Thrones", LabelTVShowDBID, "7", LabelSeason, "1", LabelEpisode, "1")

	q := newTestReconciler(lib, Policy{Prefer: config.PreferTMDb}).Resolve(context.Background(), signals)

	require.NotNil(t, q.ParentTMDbID)
	assert.Equal(t, 1399, *q.ParentTMDbID)
	assert.Nil(t, q.ParentIMDbID)
	assert.Equal(t, models.StrategyParentTMDb, q.Strategy())
}

func TestResolveParentLabelsBeatEpisodeIDs(t *testing.T) {
	lib := newFakeLibrary(nil)
	signals := labels(
		LabelTVShowTitle, "Game of Thrones",
		LabelIMDbNumber, "tt0944947",
		LabelUniqueIMDb, "tt1480055",
		LabelEpisodeTMDb, "63056",
		LabelTVShowDBID, "7",
	)

	q := newTestReconciler(lib, DefaultPolicy).Resolve(context.Background(), signals)

	assert.Equal(t, 944947, *q.ParentIMDbID)
	assert.Nil(t, q.IMDbID)
	assert.Nil(t, q.TMDbID)
	assert.Zero(t, lib.calls["VideoLibrary.GetTVShowDetails"])
	assert.NoError(t, q.Validate())
}

func TestResolveEpisodeIDsWhenNoParent(t *testing.T) {
	lib := newFakeLibrary(nil)
	signals := labels(
		LabelTVShowTitle, "Some Show",
		LabelUniqueIMDb, "tt1480055",
		LabelUniqueTMDb, "63056",
	)

	q := newTestReconciler(lib, DefaultPolicy).Resolve(context.Background(), signals)

	assert.Nil(t, q.ParentIMDbID)
	assert.Nil(t, q.ParentTMDbID)
	require.NotNil(t, q.IMDbID)
	assert.Equal(t, 1480055, *q.IMDbID)
	assert.Nil(t, q.TMDbID)
	assert.Equal(t, models.StrategyEpisodeIMDb, q.Strategy())
	assert.Equal(t, 1, lib.calls["VideoLibrary.GetTVShows"])
}

func TestResolveEpisodeOverrideLabels(t *testing.T) {
	signals := labels(
		LabelTVShowTitle, "Some Show",
		LabelUniqueIMDb, "tt1111111",
		LabelEpisodeIMDb, "tt2222222",
	)

	q := newTestReconciler(newFakeLibrary(nil), DefaultPolicy).Resolve(context.Background(), signals)

	require.NotNil(t, q.IMDbID)
	assert.Equal(t, 2222222, *q.IMDbID)
}

func TestResolveEpisodeOverrideReplacesBothIDs(t *testing.T) {
	tests := []struct {
		name     string
		policy   Policy
		labels   []string
		wantIMDb *int
		wantTMDb *int
		strategy models.Strategy
	}{
		{
			name:     "dedicated tmdb replaces generic imdb",
			policy:   DefaultPolicy,
			labels:   []string{LabelUniqueIMDb, "tt1111111", LabelEpisodeTMDb, "424242"},
			wantTMDb: models.IntPtr(424242),
			strategy: models.StrategyEpisodeTMDb,
		},
		{
			name:     "dedicated imdb replaces generic tmdb",
			policy:   Policy{Prefer: config.PreferTMDb},
			labels:   []string{LabelUniqueTMDb, "5555", LabelEpisodeIMDb, "tt2222222"},
			wantIMDb: models.IntPtr(2222222),
			strategy: models.StrategyEpisodeIMDb,
		},
		{
			name:     "no dedicated id keeps generic ids",
			policy:   DefaultPolicy,
			labels:   []string{LabelUniqueTMDb, "5555"},
			wantTMDb: models.IntPtr(5555),
			strategy: models.StrategyEpisodeTMDb,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signals := labels(append([]string{LabelTVShowTitle, "Some Show"}, tt.labels...)...)

			q := newTestReconciler(newFakeLibrary(nil), tt.policy).Resolve(context.Background(), signals)

			assert.Equal(t, tt.wantIMDb, q.IMDbID)
			assert.Equal(t, tt.wantTMDb, q.TMDbID)
			assert.Equal(t, tt.strategy, q.Strategy())
			assert.NoError(t, q.Validate())
		})
	}
}

func TestResolveSpecials(t *testing.T) {
	signals := labels(LabelTVShowTitle, "Doctor Who", LabelSeason, "4", LabelEpisode, "S3")

	q := newTestReconciler(newFakeLibrary(nil), DefaultPolicy).Resolve(context.Background(), signals)

	assert.Equal(t, "0", q.SeasonNumber)
	assert.Equal(t, "3", q.EpisodeNumber)
}

func TestResolveNonLibraryPlaybackFromFilename(t *testing.T) {
	lib := newFakeLibrary(map[string]string{
		"VideoLibrary.GetTVShows": `{"tvshows":[
			{"title":"Another Show","uniqueid":{"tmdb":"1"}},
			{"title":"Show Name","year":2019,"uniqueid":{"tmdb":"4242"}}
		]}`,
	})
	signals := Signals{Labels: map[string]string{}, PlayingFile: "/downloads/Show.Name.S02E05.1080p.mkv"}

	q := newTestReconciler(lib, DefaultPolicy).Resolve(context.Background(), signals)

	assert.Equal(t, "Show Name", q.Query)
	assert.Equal(t, "Show Name", q.TVShowTitle)
	assert.Equal(t, "2", q.SeasonNumber)
	assert.Equal(t, "5", q.EpisodeNumber)
	require.NotNil(t, q.ParentTMDbID)
	assert.Equal(t, 4242, *q.ParentTMDbID)
	assert.NoError(t, q.Validate())
}

func TestResolveNonLibraryMovieFromFilename(t *testing.T) {
	lib := newFakeLibrary(nil)
	signals := Signals{Labels: map[string]string{}, PlayingFile: "/downloads/The.Matrix.1999.1080p.BluRay.x264-GROUP.mkv"}

	q := newTestReconciler(lib, DefaultPolicy).Resolve(context.Background(), signals)

	assert.Equal(t, "The Matrix", q.Query)
	assert.Equal(t, "The Matrix", q.OriginalTitle)
	require.NotNil(t, q.Year)
	assert.Equal(t, 1999, *q.Year)
	assert.False(t, q.IsTV())
	assert.NoError(t, q.Validate())
}

func TestResolveMovieFromLabels(t *testing.T) {
	lib := newFakeLibrary(nil)
	signals := labels(
		LabelTitle, "The Matrix",
		LabelOriginalTitle, "The Matrix",
		LabelYear, "1999",
		LabelIMDbNumber, "tt0133093",
		LabelUniqueTMDb, "603",
	)

	q := newTestReconciler(lib, DefaultPolicy).Resolve(context.Background(), signals)

	assert.Equal(t, "The Matrix", q.Query)
	require.NotNil(t, q.Year)
	assert.Equal(t, 1999, *q.Year)
	assert.Equal(t, 133093, *q.IMDbID)
	assert.Nil(t, q.TMDbID)
	assert.Equal(t, models.StrategyMovieIMDb, q.Strategy())
	assert.Empty(t, lib.calls)
}

func TestResolveMovieFromLibraryByID(t *testing.T) {
	lib := newFakeLibrary(map[string]string{
		"VideoLibrary.GetMovieDetails": `{"moviedetails":{"title":"Heat","year":1995,
			"uniqueid":{"imdb":"tt0113277","tmdb":"949"},"file":"/movies/Heat (1995)/Heat.mkv"}}`,
	})
	signals := labels(LabelOriginalTitle, "Heat", LabelYear, "1995", LabelDBID, "12")

	q := newTestReconciler(lib, Policy{Prefer: config.PreferTMDb}).Resolve(context.Background(), signals)

	assert.Equal(t, 949, *q.TMDbID)
	assert.Nil(t, q.IMDbID)
	assert.Equal(t, "/movies/Heat (1995)/Heat.mkv", q.FilePath)
	assert.Zero(t, lib.calls["VideoLibrary.GetMovies"])
}

func TestResolveMovieFromLibrarySearch(t *testing.T) {
	lib := newFakeLibrary(map[string]string{
		"VideoLibrary.GetMovies": `{"movies":[
			{"title":"The Matrix Reloaded","year":2003,"imdbnumber":"tt0234215"},
			{"title":"The Matrix","year":1999,"imdbnumber":"tt0133093","file":"/movies/matrix.mkv"},
			{"title":"The Matrix Resurrections","year":2021,"imdbnumber":"tt10838180"},
			{"title":"Heat","year":1995,"imdbnumber":"tt0113277"}
		]}`,
	})
	signals := labels(LabelOriginalTitle, "Matrix", LabelYear, "1999")

	q := newTestReconciler(lib, DefaultPolicy).Resolve(context.Background(), signals)

	require.NotNil(t, q.IMDbID)
	assert.Equal(t, 133093, *q.IMDbID)
	assert.Equal(t, "/movies/matrix.mkv", q.FilePath)
}

func TestResolveQueryFallbacks(t *testing.T) {
	r := newTestReconciler(newFakeLibrary(nil), DefaultPolicy)

	q := r.Resolve(context.Background(), labels(LabelTitle, "Home Video"))
	assert.Equal(t, "Home Video", q.Query)

	q = r.Resolve(context.Background(), Signals{Labels: map[string]string{}, PlayingFile: "http://host/stream/Some.Video.mp4"})
	assert.Equal(t, "Some.Video", q.Query)

	q = r.Resolve(context.Background(), Signals{})
	assert.Equal(t, models.UnknownQuery, q.Query)
}

func TestResolveIsIdempotent(t *testing.T) {
	lib := newFakeLibrary(map[string]string{"VideoLibrary.GetTVShowDetails": gotShowDetails})
	r := newTestReconciler(lib, DefaultPolicy)
	signals := labels(LabelTVShowTitle, "Game of Thrones", LabelTVShowDBID, "7", LabelSeason, "2", LabelEpisode, "5")

	first := r.Resolve(context.Background(), signals)
	second := r.Resolve(context.Background(), signals)

	assert.Equal(t, first, second)
}

func TestResolveInvariantsHoldForAnySignals(t *testing.T) {
	imdbValues := []string{"", "tt0944947", "0944947", "0", "tt12", "abc"}
	tmdbValues := []string{"", "1399", "0", "-5"}
	titles := []struct{ show, original string }{{"Show", ""}, {"", "Film"}, {"", ""}}
	policies := []Policy{DefaultPolicy, {Prefer: config.PreferTMDb}}

	lib := newFakeLibrary(map[string]string{"VideoLibrary.GetTVShowDetails": gotShowDetails})

	for _, policy := range policies {
		r := newTestReconciler(lib, policy)
		for _, title := range titles {
			for _, parentIMDb := range imdbValues {
				for _, showTMDb := range tmdbValues {
					for _, uniqueIMDb := range imdbValues {
						for _, uniqueTMDb := range tmdbValues {
							signals := labels(
								LabelTVShowTitle, title.show,
								LabelOriginalTitle, title.original,
								LabelIMDbNumber, parentIMDb,
								LabelShowTMDb, showTMDb,
								LabelUniqueIMDb, uniqueIMDb,
								LabelUniqueTMDb, uniqueTMDb,
								LabelEpisodeTMDb, showTMDb,
								LabelTVShowDBID, "7",
								LabelEpisode, "s1",
							)
							q := r.Resolve(context.Background(), signals)
							if err := q.Validate(); err != nil {
								t.Fatalf("invariant violated for %+v: %v", signals.Labels, err)
							}
							if q.IsTV() {
								assert.Nil(t, q.Year)
							}
						}
					}
				}
			}
		}
	}
}
