//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/skinlab/skinanalyzer/internal/bootstrap"
	"github.com/skinlab/skinanalyzer/internal/domain/analysis"
	"github.com/skinlab/skinanalyzer/internal/infra/config"
	"github.com/skinlab/skinanalyzer/internal/infra/llm/visionai"
	httpiface "github.com/skinlab/skinanalyzer/internal/interface/http"
	"github.com/skinlab/skinanalyzer/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAnalysisConfig,
		provideVisionClient,
		provideResultCache,
		provideSessionManager,
		provideExporter,
		provideHandlerConfig,
		analysis.NewService,
		wire.Bind(new(analysis.ChatClient), new(*visionai.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
