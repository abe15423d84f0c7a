package ranking

import (
	"context"
	"io"
	"testing"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/metrics"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRanker() *Ranker {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewRanker(metrics.New(prometheus.NewRegistry()), logger)
}

func releases(candidates []models.SubtitleCandidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Release
	}
	return out
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Movie (2020) [1080p]_x265-Grp€Final  WEB+DL")
	assert.Equal(t, []string{"movie", "2020", "1080p", "x265", "grp", "final", "web", "dl"}, got)
	assert.Empty(t, Tokenize(""))
}

func TestMatcherUnionOfGroups(t *testing.T) {
	m := NewMatcher("/media/Show.S01E01.WEBRip.NF.1080p.mkv")

	release := m.Terms("release")
	assert.Contains(t, release, "webdl")
	assert.Contains(t, release, "mkv")
	assert.NotContains(t, release, "bluray")

	assert.Equal(t, []string{"netflix", "nflx", "nf"}, m.Terms("service"))
	assert.Equal(t, []string{"1080p", "1080"}, m.Terms("quality"))
	assert.Empty(t, m.Terms("codec"))
	assert.Nil(t, m.Terms("unknown"))
}

func TestMatcherUsesBaseName(t *testing.T) {
	m := NewMatcher("/mnt/bluray/Movie.2001.DVDRip.avi")
	assert.NotContains(t, m.Terms("release"), "bluray")
	assert.Contains(t, m.Terms("release"), "dvdrip")
}

func TestCostLess(t *testing.T) {
	assert.True(t, Cost{-10, 0}.Less(Cost{0, -5}))
	assert.False(t, Cost{0, -5}.Less(Cost{-10, 0}))
	assert.True(t, Cost{-10, -0.9}.Less(Cost{-10, -0.1}))
	assert.False(t, Cost{-10, -0.5}.Less(Cost{-10, -0.5}))
}

func TestRankMatrixScenario(t *testing.T) {
	candidates := []models.SubtitleCandidate{
		{FileID: 1, Release: "The.Matrix.1999.720p.WEB-DL.x264"},
		{FileID: 2, Release: "The.Matrix.1999.1080p.BluRay.x264-GROUP"},
		{FileID: 3, Release: "The.Matrix.1999.DVDRip.XviD"},
	}

	ranked := newTestRanker().Rank(context.Background(), candidates, "/movies/The.Matrix.1999.1080p.BluRay.x264-GROUP.mkv")

	require.Len(t, ranked, 3)
	assert.Equal(t, []int64{2, 1, 3}, []int64{ranked[0].FileID, ranked[1].FileID, ranked[2].FileID})
}

func TestRankCostBreakdown(t *testing.T) {
	scored := Score([]models.SubtitleCandidate{
		{Release: "The.Matrix.1999.1080p.BluRay.x264-GROUP"},
	}, "The.Matrix.1999.1080p.BluRay.x264-GROUP.mkv")

	require.Len(t, scored, 1)
	cost := scored[0].Cost
	require.Len(t, cost, len(Categories)+1)
	assert.Equal(t, -10.0, cost[0]) // bluray
	assert.Equal(t, 0.0, cost[1])
	assert.Equal(t, -10.0, cost[2]) // 1080p, 1080
	assert.Equal(t, 0.0, cost[3])
	assert.Equal(t, -4.0, cost[4]) // x264, 264
	assert.Less(t, cost[7], -0.8)
}

func TestRankIsStableAndKeepsEverything(t *testing.T) {
	candidates := []models.SubtitleCandidate{
		{FileID: 1, Release: "same"},
		{FileID: 2, Release: "same"},
		{FileID: 3, Release: "same"},
	}

	ranked := newTestRanker().Rank(context.Background(), candidates, "")
	assert.Equal(t, []int64{1, 2, 3}, []int64{ranked[0].FileID, ranked[1].FileID, ranked[2].FileID})

	assert.Empty(t, newTestRanker().Rank(context.Background(), nil, "movie.mkv"))
}

func TestRankIsDeterministic(t *testing.T) {
	candidates := []models.SubtitleCandidate{
		{FileID: 1, Release: "Show.S01E01.720p.HDTV.x264"},
		{FileID: 2, Release: "Show.S01E01.1080p.AMZN.WEB-DL.DDP5.1.H.264"},
		{FileID: 3, Release: "Show.S01E01.1080p.NF.WEBRip.x265"},
		{FileID: 4, Release: "Show.S01E01.HDR.2160p.WEB.h265"},
	}
	file := "Show.S01E01.1080p.NF.WEB-DL.DDP5.1.x264.mkv"

	ranker := newTestRanker()
	first := releases(ranker.Rank(context.Background(), candidates, file))
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, releases(ranker.Rank(context.Background(), candidates, file)))
	}
	assert.Equal(t, "Show.S01E01.1080p.NF.WEBRip.x265", first[0])
}

func TestRankDoesNotModifyInput(t *testing.T) {
	candidates := []models.SubtitleCandidate{
		{FileID: 1, Release: "Movie.DVDRip"},
		{FileID: 2, Release: "Movie.BluRay"},
	}

	ranked := newTestRanker().Rank(context.Background(), candidates, "Movie.BluRay.mkv")
	assert.Equal(t, int64(2), ranked[0].FileID)
	assert.Equal(t, int64(1), candidates[0].FileID)
}
