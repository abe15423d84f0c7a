package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/controllers"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/identity"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/sirupsen/logrus"
)

// Searcher runs subtitle searches and identity resolution
type Searcher interface {
	Search(ctx context.Context, req controllers.SearchRequest) (*controllers.SearchResult, error)
	Resolve(ctx context.Context, player identity.PlayerSource) models.MediaQuery
}

// SearchHandler serves subtitle searches for the playing item
type SearchHandler struct {
	searcher Searcher
	logger   *logrus.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searcher Searcher, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		searcher: searcher,
		logger:   logger,
	}
}

// ResolveResponse is a resolved identity with its active strategy
type ResolveResponse struct {
	Query    models.MediaQuery `json:"query"`
	Strategy models.Strategy   `json:"strategy"`
}

// Search handles GET /api/search
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	req := controllers.SearchRequest{
		Query:             c.Query("query"),
		Languages:         c.Query("languages"),
		PreferredLanguage: c.Query("preferredlanguage"),
	}

	result, err := h.searcher.Search(c.UserContext(), req)
	if err != nil {
		h.logger.WithError(err).Error("Subtitle search failed")
		return providerError(c, err, false)
	}
	return c.JSON(result)
}

// Resolve handles GET /api/resolve
func (h *SearchHandler) Resolve(c *fiber.Ctx) error {
	q := h.searcher.Resolve(c.UserContext(), nil)
	return c.JSON(ResolveResponse{Query: q, Strategy: q.Strategy()})
}
