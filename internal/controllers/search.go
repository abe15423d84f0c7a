package controllers

import (
	"context"
	"fmt"
	"strings"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/config"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/filename"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/identity"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/ranking"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/services/opensubtitles"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/controllers")

// SubtitleSearcher finds subtitle candidates for a query
type SubtitleSearcher interface {
	Search(ctx context.Context, params opensubtitles.SearchParams) ([]models.SubtitleCandidate, error)
}

// SearchRequest describes one subtitle search
type SearchRequest struct {
	// Query is a manual search text; when set the player is not consulted
	// for identity.
	Query             string
	Languages         string // comma separated English names, may be URL escaped
	PreferredLanguage string

	// Player overrides the controller's player source
	Player identity.PlayerSource
}

// SearchResult is a resolved query with its ranked subtitles
type SearchResult struct {
	Query       models.MediaQuery          `json:"query"`
	Languages   []string                   `json:"languages"`
	PlayingFile string                     `json:"playing_file,omitempty"`
	Candidates  []models.SubtitleCandidate `json:"candidates"`
	Items       []models.ListItem          `json:"items"`
}

// SearchController runs the search pipeline: player snapshot, identity,
// provider search, ranking
type SearchController struct {
	player     identity.PlayerSource
	reconciler *identity.Reconciler
	provider   SubtitleSearcher
	ranker     *ranking.Ranker
	cfg        *config.Config
	logger     *logrus.Logger
}

// NewSearchController creates a new search controller
func NewSearchController(player identity.PlayerSource, reconciler *identity.Reconciler, provider SubtitleSearcher, ranker *ranking.Ranker, cfg *config.Config, logger *logrus.Logger) *SearchController {
	return &SearchController{
		player:     player,
		reconciler: reconciler,
		provider:   provider,
		ranker:     ranker,
		cfg:        cfg,
		logger:     logger,
	}
}

// Resolve snapshots the player and returns its media identity
func (c *SearchController) Resolve(ctx context.Context, player identity.PlayerSource) models.MediaQuery {
	if player == nil {
		player = c.player
	}
	return c.reconciler.Resolve(ctx, identity.Collect(ctx, player, c.logger))
}

// Search resolves what is playing and returns ranked subtitles
func (c *SearchController) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	ctx, span := tracer.Start(ctx, "controllers.Search")
	defer span.End()

	player := req.Player
	if player == nil {
		player = c.player
	}
	languages := req.Languages
	if languages == "" {
		languages = c.cfg.Languages
	}
	codes := LanguageCodes(languages, req.PreferredLanguage, c.logger)

	signals := identity.Collect(ctx, player, c.logger)

	var query models.MediaQuery
	if manual := strings.TrimSpace(req.Query); manual != "" {
		query = models.MediaQuery{Query: manual}
	} else {
		query = c.reconciler.Resolve(ctx, signals)
	}
	span.SetAttributes(
		attribute.String("search.query", query.Query),
		attribute.Bool("search.manual", req.Query != ""),
	)

	c.logger.WithFields(logrus.Fields{
		"query":     query.Query,
		"strategy":  query.Strategy(),
		"languages": strings.Join(codes, ","),
	}).Info("Searching subtitles")

	candidates, err := c.provider.Search(ctx, opensubtitles.SearchParams{
		Query:             query,
		Languages:         strings.Join(codes, ","),
		MovieHash:         c.movieHash(signals.PlayingFile),
		HearingImpaired:   c.cfg.HearingImpaired,
		ForeignPartsOnly:  c.cfg.ForeignPartsOnly,
		MachineTranslated: c.cfg.MachineTranslated,
		AITranslated:      c.cfg.AITranslated,
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("subtitle search failed: %w", err)
	}

	ranked := c.ranker.Rank(ctx, candidates, signals.PlayingFile)
	items := make([]models.ListItem, 0, len(ranked))
	for _, candidate := range ranked {
		items = append(items, NewListItem(candidate))
	}

	if len(items) == 0 {
		c.logger.WithField("query", query.Query).Info("No subtitle found")
	} else {
		c.logger.WithFields(logrus.Fields{
			"query": query.Query,
			"count": len(items),
			"top":   items[0].Label2,
		}).Info("Subtitle search completed")
	}

	return &SearchResult{
		Query:       query,
		Languages:   codes,
		PlayingFile: signals.PlayingFile,
		Candidates:  ranked,
		Items:       items,
	}, nil
}

// movieHash hashes a local playing file; remote or unreadable files
// are searched without a hash
func (c *SearchController) movieHash(path string) string {
	if path == "" || strings.Contains(path, "://") {
		return ""
	}
	hash, size, err := filename.MovieHash(path)
	if err != nil {
		c.logger.WithError(err).WithField("path", path).Debug("Skipping movie hash")
		return ""
	}
	c.logger.WithFields(logrus.Fields{
		"hash": hash,
		"size": size,
	}).Debug("Computed movie hash")
	return hash
}
