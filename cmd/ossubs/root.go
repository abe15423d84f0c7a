package main

import (
	"fmt"
	"path/filepath"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/config"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ossubs",
		Short:         "Find and rank OpenSubtitles subtitles for what Kodi is playing",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "", "log format (text or json)")
	_ = viper.BindPFlag("LOG_LEVEL", root.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("LOG_FORMAT", root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(
		newServeCmd(),
		newSearchCmd(),
		newResolveCmd(),
		newDownloadCmd(),
		newRankCmd(),
		newParseCmd(),
	)
	return root
}

// setup loads configuration and builds the logger
func setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	logger.WithField("config_dir", filepath.Dir(cfg.DatabaseFile)).Debug("Configuration loaded")
	return cfg, logger, nil
}
