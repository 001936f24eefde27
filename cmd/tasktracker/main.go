// Package main is the entry point for the tasktracker service.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tasktracker/internal/backend/jsonbin"
	"tasktracker/internal/backend/workersai"
	"tasktracker/internal/cli"
	"tasktracker/internal/commands"
	"tasktracker/internal/config"
	"tasktracker/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	factory := func(ctx context.Context, cfg *config.Config) (*service.Backends, error) {
		aiBase := cfg.AI.BaseURL
		if aiBase == "" {
			aiBase = workersai.BaseURL(cfg.AI.AccountID)
		}
		logger := commands.NewLogger(cfg, os.Stderr)
		return &service.Backends{
			Store:     jsonbin.New(cfg.Store.BaseURL, cfg.Store.MasterKey, cfg.Store.BinID, cfg.Store.Timeout),
			Completer: workersai.New(aiBase, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Timeout, logger),
		}, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
