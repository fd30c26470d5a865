// Package main provides the entry point for the vidqa MCP server.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/raphaelgruber/vidqa/internal/app"
	"github.com/raphaelgruber/vidqa/internal/config"
	"github.com/raphaelgruber/vidqa/internal/server"
	"github.com/raphaelgruber/vidqa/internal/tools"
)

const version = "0.1.0"

func main() {
	wipeDB := flag.Bool("wipe", false, "wipe all indexed chunks on startup (testing only)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer func() { _ = cleanup() }()

	logger.Info("vidqa-mcp starting",
		"version", version,
		"store", cfg.Store,
		"llm_provider", cfg.LLMProvider,
		"embed_model", cfg.EmbedModel,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer func() {
		logger.Info("closing connections")
		a.Close(context.Background())
	}()

	if *wipeDB {
		if err := a.WipeData(ctx); err != nil {
			logger.Error("failed to wipe data", "error", err)
			os.Exit(1)
		}
		logger.Warn("all indexed chunks wiped")
	}

	// Create and setup server
	srv := server.New(version, logger)
	srv.Setup()

	tools.RegisterAll(srv.MCPServer(), a.ToolDependencies(), &a.Config)
	logger.Info("server ready, awaiting connections")

	// Run server (blocks until disconnect or context cancelled)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
