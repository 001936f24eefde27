package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/spf13/pflag"

	"tasktracker/internal/api"
	"tasktracker/internal/config"
	"tasktracker/internal/exitcode"
	"tasktracker/internal/service"
	"tasktracker/internal/tasks"
)

const (
	// shutdownTimeout bounds graceful shutdown after a signal.
	shutdownTimeout = 5 * time.Second

	readHeaderTimeout = 10 * time.Second
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd implements the serve command.
//
// Startup loads the task list from the remote store (an empty list if the
// store cannot be read) and then verifies both remote services. A failed
// verification is logged and the service starts anyway; use the check
// command for a hard gate.
type ServeCmd struct {
	addr     string
	noVerify bool
	onListen func(net.Addr)
}

// SetAddr sets the listen address (for testing).
func (c *ServeCmd) SetAddr(addr string) {
	c.addr = addr
}

// SetOnListen registers a callback run once the listener is bound (for testing).
func (c *ServeCmd) SetOnListen(fn func(net.Addr)) {
	c.onListen = fn
}

func (c *ServeCmd) Name() string        { return "serve" }
func (c *ServeCmd) Aliases() []string   { return nil }
func (c *ServeCmd) Synopsis() string    { return "Run the HTTP service" }
func (c *ServeCmd) Usage() string       { return "tasktracker serve [--addr <host:port>] [--no-verify]" }
func (c *ServeCmd) NeedsBackends() bool { return true }

func (c *ServeCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.addr, "addr", "", "")
	fs.BoolVar(&c.noVerify, "no-verify", false, "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, b *service.Backends, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	logger := NewLogger(cfg, errOut)

	manager := tasks.NewManager(b.Store, b.Completer, logger)
	// A failed load is logged by the manager; the list starts empty.
	_ = manager.Load(ctx)

	if !c.noVerify {
		if err := manager.Verify(ctx); err != nil {
			logger.Warn("startup verification failed", "error", err)
		} else {
			logger.Info("startup verification passed")
		}
	}

	addr := cfg.ListenAddr
	if c.addr != "" {
		addr = c.addr
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fmt.Fprintf(errOut, "error: could not listen on %s: %v\n", addr, err)
		return exitcode.UserError
	}

	server := &http.Server{
		Handler:           api.NewServer(manager, cfg.ListLimit, logger).Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	logger.Info("listening", "addr", listener.Addr().String())
	if c.onListen != nil {
		c.onListen(listener.Addr())
	}

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(errOut, "error: server failed: %v\n", err)
			return exitcode.BackendError
		}
		return exitcode.Success
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(errOut, "error: shutdown: %v\n", err)
		return exitcode.BackendError
	}
	logger.Info("stopped")
	return exitcode.Success
}
