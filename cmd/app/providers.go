package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/skinlab/skinanalyzer/internal/domain/analysis"
	"github.com/skinlab/skinanalyzer/internal/domain/report"
	"github.com/skinlab/skinanalyzer/internal/domain/session"
	"github.com/skinlab/skinanalyzer/internal/infra/config"
	"github.com/skinlab/skinanalyzer/internal/infra/llm/visionai"
	"github.com/skinlab/skinanalyzer/internal/infra/resultcache"
	httpiface "github.com/skinlab/skinanalyzer/internal/interface/http"
)

func provideAnalysisConfig(cfg *config.Config) analysis.Config {
	return analysis.Config{
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		Prompt:      cfg.AI.Prompt,
		CacheTTL:    cfg.Cache.TTL,
	}
}

func provideVisionClient(cfg *config.Config) (*visionai.Client, error) {
	return visionai.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.RequestTimeout)
}

// provideResultCache prefers valkey when configured, falling back to the
// in-process store when the connection cannot be established.
func provideResultCache(cfg *config.Config, logger *slog.Logger) analysis.Cache {
	if cfg.Cache.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return resultcache.NewMemory()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return resultcache.NewMemory()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		} else {
			logger.Info("valkey result cache enabled", "addr", cfg.Cache.Addr)
			return resultcache.NewValkey(client, "analysis")
		}
	}
	return resultcache.NewMemory()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideSessionManager(cfg *config.Config) *session.Manager {
	return session.NewManager(session.Config{
		TTL:              cfg.Session.TTL,
		ProgressInterval: cfg.Session.ProgressInterval,
	})
}

func provideExporter() *report.Exporter {
	return report.NewExporter()
}

func provideHandlerConfig(cfg *config.Config) httpiface.HandlerConfig {
	// Leave the gateway client room to observe its own timeout first.
	return httpiface.HandlerConfig{
		MaxUploadBytes: cfg.Intake.MaxUploadBytes,
		AnalyzeTimeout: cfg.AI.RequestTimeout + 15*time.Second,
	}
}
