// Package app wires configuration, storage, models and services into the
// components shared by the CLI and the MCP server.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/raphaelgruber/vidqa/internal/config"
	"github.com/raphaelgruber/vidqa/internal/db"
	"github.com/raphaelgruber/vidqa/internal/llm"
	"github.com/raphaelgruber/vidqa/internal/metrics"
	"github.com/raphaelgruber/vidqa/internal/parser"
	"github.com/raphaelgruber/vidqa/internal/service"
	"github.com/raphaelgruber/vidqa/internal/store/memory"
	"github.com/raphaelgruber/vidqa/internal/tools"
	"github.com/raphaelgruber/vidqa/internal/transcript"
)

// App holds the long-lived components of one process.
type App struct {
	Config   config.Config
	Index    service.Index
	Embedder *llm.Embedder
	Model    *llm.Model
	Ingest   *service.IngestService
	Source   transcript.DirSource
	Metrics  *metrics.Collector
	Logger   *slog.Logger

	dbClient *db.Client
}

// New connects the configured index and model backends.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.RoutingFile != "" {
		routing, err := config.LoadRouting(cfg.RoutingFile)
		if err != nil {
			return nil, err
		}
		cfg.Routing = routing
	}
	logger = config.LoggerOrDefault(logger)
	collector := metrics.NewCollector()

	a := &App{
		Config:  cfg,
		Source:  transcript.DirSource{Dir: cfg.TranscriptDir},
		Metrics: collector,
		Logger:  logger,
	}

	switch cfg.Store {
	case config.StoreMemory:
		a.Index = memory.New()
	case config.StoreSurrealDB:
		client, err := db.NewClient(ctx, db.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
			AuthLevel: cfg.SurrealDBAuthLevel,
		}, logger, collector)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := client.InitSchema(ctx, cfg.EmbedDimension); err != nil {
			_ = client.Close(ctx)
			return nil, fmt.Errorf("initialize schema: %w", err)
		}
		a.dbClient = client
		a.Index = client
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}

	var err error
	if a.Embedder, err = llm.NewEmbedder(cfg, collector, logger); err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("init embedder: %w", err)
	}
	if a.Model, err = llm.NewModel(ctx, cfg, collector, logger); err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("init model: %w", err)
	}

	chunker, err := parser.NewChunker(cfg)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	a.Ingest = service.NewIngestService(a.Index, a.Embedder, chunker, logger)

	logger.Info("app initialized",
		"store", cfg.Store,
		"llm_provider", cfg.LLMProvider,
		"llm_model", a.Model.Model(),
		"embed_model", a.Embedder.Model(),
		"chunk_policy", cfg.ChunkPolicy,
		"custom_routing", !cfg.Routing.IsZero())
	return a, nil
}

// Answerer returns an answerer scoped to one video.
func (a *App) Answerer(videoID string) (*service.Answerer, error) {
	retriever := service.NewVectorRetriever(a.Index, a.Embedder, videoID, a.Config.TopK)
	return service.NewAnswerer(retriever, a.Model, service.ConfigFrom(a.Config, a.Metrics, a.Logger))
}

// ToolDependencies returns the dependencies of the MCP tool handlers.
func (a *App) ToolDependencies() *tools.Dependencies {
	return &tools.Dependencies{
		Index:     a.Index,
		Embedder:  a.Embedder,
		Completer: a.Model,
		Ingest:    a.Ingest,
		Source:    a.Source,
		Metrics:   a.Metrics,
		Logger:    a.Logger,
	}
}

// WipeData removes every indexed chunk from the database store. The memory
// store starts empty and needs no wiping.
func (a *App) WipeData(ctx context.Context) error {
	if a.dbClient == nil {
		return nil
	}
	return a.dbClient.WipeData(ctx)
}

// Close releases the database connection, if any.
func (a *App) Close(ctx context.Context) {
	if a.dbClient == nil {
		return
	}
	if err := a.dbClient.Close(ctx); err != nil {
		a.Logger.Warn("failed to close database", "error", err)
	}
	a.dbClient = nil
}
