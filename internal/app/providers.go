package app

import (
	"fmt"

	"github.com/google/wire"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/api"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/config"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/controllers"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/filename"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/identity"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/library"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/metrics"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/ranking"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/scheduler"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/services/kodi"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/services/opensubtitles"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

// identitySet resolves media identity; it needs only the player
var identitySet = wire.NewSet(
	provideTracerProvider,
	provideRegistry,
	provideMetrics,
	kodi.NewClient,
	wire.Bind(new(library.Transport), new(*kodi.Client)),
	provideCache,
	library.NewGateway,
	provideReconciler,
)

// serviceSet adds the subtitle provider, the download store and the API
var serviceSet = wire.NewSet(
	identitySet,
	opensubtitles.NewClient,
	wire.Bind(new(filename.Guesser), new(*opensubtitles.Client)),
	filename.NewParser,
	ranking.NewRanker,
	provideDatabase,
	provideSearchController,
	provideDownloadController,
	provideCleanupController,
	wire.Bind(new(scheduler.Pruner), new(*controllers.CleanupController)),
	scheduler.NewScheduler,
	provideServer,
	wire.Struct(new(App), "*"),
)

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideMetrics(reg *prometheus.Registry) *metrics.Metrics {
	return metrics.New(reg)
}

func provideCache(cfg *config.Config) *library.Cache {
	return library.NewCache(cfg.LibraryCacheTTL)
}

func provideReconciler(cfg *config.Config, gateway *library.Gateway, parser *filename.Parser, m *metrics.Metrics, logger *logrus.Logger) *identity.Reconciler {
	providers := identity.DefaultProviders(gateway, parser, cfg.LibrarySearchLimit, logger)
	return identity.NewReconciler(providers, identity.Policy{Prefer: cfg.IDPreference}, m, logger)
}

// provideOfflineParser parses file names without the remote guess service
func provideOfflineParser(logger *logrus.Logger) *filename.Parser {
	return filename.NewParser(nil, logger)
}

func provideDatabase(cfg *config.Config, logger *logrus.Logger) (*models.Database, func(), error) {
	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close database")
		}
	}
	return db, cleanup, nil
}

func provideSearchController(player *kodi.Client, reconciler *identity.Reconciler, provider *opensubtitles.Client, ranker *ranking.Ranker, cfg *config.Config, logger *logrus.Logger) *controllers.SearchController {
	return controllers.NewSearchController(player, reconciler, provider, ranker, cfg, logger)
}

// provideDownloadController starts every run with an empty temp directory
func provideDownloadController(cfg *config.Config, db *models.Database, provider *opensubtitles.Client, logger *logrus.Logger) (*controllers.DownloadController, error) {
	if err := controllers.ResetTempDir(cfg.TempDir); err != nil {
		return nil, err
	}
	return controllers.NewDownloadController(db, provider, cfg.TempDir, cfg.SubtitleFormat, logger), nil
}

func provideCleanupController(cfg *config.Config, db *models.Database, logger *logrus.Logger) *controllers.CleanupController {
	return controllers.NewCleanupController(db, cfg.DownloadRetentionHours, logger)
}

func provideServer(cfg *config.Config, db *models.Database, gateway *library.Gateway, search *controllers.SearchController, download *controllers.DownloadController, reg *prometheus.Registry, logger *logrus.Logger) *api.Server {
	return api.NewServer(cfg, db, gateway, search, download, reg, logger)
}
