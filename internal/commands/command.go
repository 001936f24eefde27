// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"tasktracker/internal/config"
	"tasktracker/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsBackends returns true if the command talks to the remote store
	// or the completion endpoint. Such commands require a valid config.
	NeedsBackends() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *pflag.FlagSet)

	// Run executes the command.
	// cfg is always provided.
	// b is nil if NeedsBackends() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, b *service.Backends, args []string, out, errOut io.Writer) int
}

// NewLogger returns the structured logger commands write to.
// --debug enables debug records, --quiet keeps only warnings and errors.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case cfg.Debug:
		level = slog.LevelDebug
	case cfg.Quiet:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
