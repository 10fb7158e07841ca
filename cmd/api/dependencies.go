package main

import (
	"log/slog"

	"github.com/brenkeeper/brenkeeper/internal/domain/statement/categorizer"
	"github.com/brenkeeper/brenkeeper/internal/domain/statement/docparser"
	"github.com/brenkeeper/brenkeeper/internal/domain/statement/handler"
	"github.com/brenkeeper/brenkeeper/internal/domain/statement/normalizer"
	"github.com/brenkeeper/brenkeeper/internal/domain/statement/service"
	"github.com/brenkeeper/brenkeeper/pkg/config"
	"github.com/brenkeeper/brenkeeper/pkg/metrics"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	Categorizer      *categorizer.Categorizer
	Normalizer       *normalizer.Normalizer
	DocParser        *docparser.Chain
	StatementService *service.Service

	StatementHandler *handler.StatementHandler
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) *Dependencies {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if cfg.Observability.MetricsEnabled {
		deps.Metrics = metrics.Default()
	}

	deps.Categorizer = categorizer.New()
	deps.Normalizer = normalizer.New(deps.Categorizer)

	// Providers run strictly in sequence: remote service first, local
	// subprocess fallback only when configured.
	providers := []docparser.Provider{
		docparser.NewHTTPProvider(cfg.Parser.APIURL, cfg.Parser.APIKey, cfg.Parser.Bank, cfg.Parser.Timeout()),
	}
	if cfg.Parser.LocalCommand != "" {
		providers = append(providers, docparser.NewLocalProvider(cfg.Parser.LocalCommand, nil, cfg.Parser.Timeout()))
	}
	deps.DocParser = docparser.NewChain(logger, providers...)

	deps.StatementService = service.New(deps.Normalizer, logger).
		WithDocumentParser(deps.DocParser)
	if deps.Metrics != nil {
		deps.StatementService.WithMetrics(deps.Metrics)
	}

	deps.StatementHandler = handler.NewStatementHandler(deps.StatementService, logger, cfg.Server.MaxUploadBytes)

	logger.Info("all dependencies initialized successfully")
	return deps
}
