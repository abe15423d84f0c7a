package identity

import (
	"context"
	"path/filepath"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/filename"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/metrics"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/identity")

// Reconciler folds player, library and filename evidence into one MediaQuery
type Reconciler struct {
	providers []SignalProvider
	policy    Policy
	metrics   *metrics.Metrics
	logger    *logrus.Logger
}

// NewReconciler creates a reconciler running providers in order
func NewReconciler(providers []SignalProvider, policy Policy, m *metrics.Metrics, logger *logrus.Logger) *Reconciler {
	return &Reconciler{
		providers: providers,
		policy:    policy,
		metrics:   m,
		logger:    logger,
	}
}

// Resolve builds the canonical query for a signal snapshot. The same
// snapshot always resolves to the same query.
func (r *Reconciler) Resolve(ctx context.Context, signals Signals) models.MediaQuery {
	ctx, span := tracer.Start(ctx, "identity.Resolve")
	defer span.End()

	var q models.MediaQuery
	for _, provider := range r.providers {
		patch := provider.Provide(ctx, q, signals)
		if patch.IsEmpty() {
			continue
		}
		span.AddEvent("patch", trace.WithAttributes(attribute.String("provider", provider.Name())))
		q = patch.Apply(q)
	}

	q = Normalize(q, r.policy)
	q.Query = queryText(q, signals)

	strategy := q.Strategy()
	span.SetAttributes(
		attribute.String("identity.strategy", string(strategy)),
		attribute.Bool("identity.tv", q.IsTV()),
	)
	r.metrics.Resolution(string(strategy))

	fields := logrus.Fields{
		"query":    q.Query,
		"strategy": strategy,
	}
	if q.IsTV() {
		fields["season"] = q.SeasonNumber
		fields["episode"] = q.EpisodeNumber
	}
	if q.ParentIMDbID != nil {
		fields["parent_imdb"] = formatIMDb(*q.ParentIMDbID)
	}
	if q.IMDbID != nil {
		fields["imdb"] = formatIMDb(*q.IMDbID)
	}
	r.logger.WithFields(fields).Info("Resolved media identity")

	if err := q.Validate(); err != nil {
		r.logger.WithError(err).Error("Resolved query violates identity invariants")
	}
	return q
}

// queryText picks the search text: show title, original title, player
// title, file name, then a literal placeholder
func queryText(q models.MediaQuery, signals Signals) string {
	if q.IsTV() {
		return q.TVShowTitle
	}
	if q.OriginalTitle != "" {
		return q.OriginalTitle
	}
	if title := utils.NormalizeString(signals.Label(LabelTitle)); title != "" {
		return title
	}
	if signals.PlayingFile != "" {
		if base := filename.StripExtension(filepath.Base(signals.PlayingFile)); base != "" && base != "." && base != "/" {
			return base
		}
	}
	return models.UnknownQuery
}
