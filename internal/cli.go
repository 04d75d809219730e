package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/ansuz/internal/assistant"
	"github.com/starford/ansuz/internal/genai"
	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/mcpserver"
	"github.com/starford/ansuz/internal/noteservice"
	"github.com/starford/ansuz/internal/settings"
	"github.com/starford/ansuz/internal/storage"
)

// openVault prepares the vault directory, storage provider, settings store,
// and assistant service shared by the one-shot CLI commands.
func openVault(cfg *Config) (*assistant.Service, storage.Provider, *settings.Store, error) {
	if err := os.MkdirAll(cfg.Vault.Path, 0o755); err != nil {
		return nil, nil, nil, fmt.Errorf("create vault dir: %w", err)
	}
	store, err := storage.NewFS(cfg.Vault.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init storage: %w", err)
	}
	settingsStore, err := settings.Open(cfg.Settings.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load settings: %w", err)
	}
	gen := genai.New(settingsStore)
	return assistant.NewService(store, gen, settingsStore), store, settingsStore, nil
}

// RunCapture records text as a new fleeting note and prints its path.
func RunCapture(ctx context.Context, cfg *Config, text string) error {
	asst, _, _, err := openVault(cfg)
	if err != nil {
		return err
	}
	ref, err := asst.Capture(ctx, text)
	if err != nil {
		return err
	}
	fmt.Printf("Captured %s\n", ref.Path)
	return nil
}

// RunReview prints the daily review digest.
func RunReview(ctx context.Context, cfg *Config) error {
	asst, _, _, err := openVault(cfg)
	if err != nil {
		return err
	}
	digest, err := asst.DailyReview(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Revisit:")
	if len(digest.Revisit) == 0 {
		fmt.Println("  (nothing yet)")
	}
	for _, ref := range digest.Revisit {
		fmt.Printf("  %s\n", ref.Path)
	}

	fmt.Println("Orphans (fewer than two links):")
	if len(digest.Orphans) == 0 {
		fmt.Println("  (none)")
	}
	for _, ref := range digest.Orphans {
		fmt.Printf("  %s\n", ref.Path)
	}

	fmt.Println("Clusters:")
	for _, c := range digest.Clusters {
		fmt.Printf("  %s\n", c)
	}
	return nil
}

// RunMCP serves the vault over the Model Context Protocol on stdin/stdout.
// Logs go to stderr because stdout carries the protocol stream.
func RunMCP(ctx context.Context, cfg *Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	asst, store, _, err := openVault(cfg)
	if err != nil {
		return err
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	if err := index.Sync(db, store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	notes := noteservice.NewService(store, db)
	srv := mcpserver.New(notes, asst, store)

	logger.Info("MCP server starting on stdio")
	return srv.ServeStdio()
}
