package app

import (
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/api"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/config"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/controllers"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/identity"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/library"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/ranking"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/scheduler"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/services/kodi"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/services/opensubtitles"
	"github.com/sirupsen/logrus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// App holds every component of the subtitle service
type App struct {
	Config     *config.Config
	Logger     *logrus.Logger
	Tracer     *sdktrace.TracerProvider
	DB         *models.Database
	Kodi       *kodi.Client
	Gateway    *library.Gateway
	Provider   *opensubtitles.Client
	Reconciler *identity.Reconciler
	Ranker     *ranking.Ranker
	Search     *controllers.SearchController
	Download   *controllers.DownloadController
	Cleanup    *controllers.CleanupController
	Scheduler  *scheduler.Scheduler
	Server     *api.Server
}

// Resolver is the subset needed to resolve the playing item's identity
type Resolver struct {
	Tracer     *sdktrace.TracerProvider
	Kodi       *kodi.Client
	Gateway    *library.Gateway
	Reconciler *identity.Reconciler
}
