//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/config"
	"github.com/sirupsen/logrus"
)

// InitializeApp wires the full service
func InitializeApp(cfg *config.Config, logger *logrus.Logger) (*App, func(), error) {
	wire.Build(serviceSet)
	return nil, nil, nil
}

// InitializeResolver wires identity resolution without the subtitle provider
func InitializeResolver(cfg *config.Config, logger *logrus.Logger) (*Resolver, func(), error) {
	wire.Build(
		identitySet,
		provideOfflineParser,
		wire.Struct(new(Resolver), "*"),
	)
	return nil, nil, nil
}
