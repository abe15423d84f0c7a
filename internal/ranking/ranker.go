package ranking

import (
	"context"
	"sort"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/metrics"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/ranking")

// Scored pairs a candidate with its cost
type Scored struct {
	Candidate models.SubtitleCandidate
	Cost      Cost
}

// Ranker orders subtitle candidates by how well their release label
// matches the file being played
type Ranker struct {
	metrics *metrics.Metrics
	logger  *logrus.Logger
}

// NewRanker creates a new ranker
func NewRanker(m *metrics.Metrics, logger *logrus.Logger) *Ranker {
	return &Ranker{metrics: m, logger: logger}
}

// Rank returns the candidates sorted by ascending cost. Equal costs keep
// their input order and no candidate is dropped.
func (r *Ranker) Rank(ctx context.Context, candidates []models.SubtitleCandidate, playingFile string) []models.SubtitleCandidate {
	scored := r.RankScored(ctx, candidates, playingFile)
	out := make([]models.SubtitleCandidate, len(scored))
	for i, s := range scored {
		out[i] = s.Candidate
	}
	return out
}

// RankScored is Rank keeping the cost of each candidate
func (r *Ranker) RankScored(ctx context.Context, candidates []models.SubtitleCandidate, playingFile string) []Scored {
	_, span := tracer.Start(ctx, "ranking.Rank", trace.WithAttributes(
		attribute.Int("candidates", len(candidates)),
	))
	defer span.End()

	scored := Score(candidates, playingFile)
	r.metrics.Ranked(len(scored))

	if r.logger != nil && len(scored) > 0 {
		r.logger.WithFields(logrus.Fields{
			"candidates": len(scored),
			"top":        scored[0].Candidate.Release,
		}).Debug("Ranked subtitle candidates")
	}
	return scored
}

// Score computes costs and sorts them without tracing or metrics
func Score(candidates []models.SubtitleCandidate, playingFile string) []Scored {
	matcher := NewMatcher(playingFile)

	scored := make([]Scored, len(candidates))
	for i, c := range candidates {
		scored[i] = Scored{Candidate: c, Cost: matcher.Cost(c.Release)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Cost.Less(scored[j].Cost)
	})
	return scored
}
