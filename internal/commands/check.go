package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"tasktracker/internal/config"
	"tasktracker/internal/exitcode"
	"tasktracker/internal/service"
	"tasktracker/internal/tasks"
)

func init() {
	Register(&CheckCmd{})
}

// CheckCmd implements the check command. It runs the same verification as
// serve but fails with a backend error instead of logging.
type CheckCmd struct{}

func (c *CheckCmd) Name() string        { return "check" }
func (c *CheckCmd) Aliases() []string   { return []string{"verify"} }
func (c *CheckCmd) Synopsis() string    { return "Verify the remote services" }
func (c *CheckCmd) Usage() string       { return "tasktracker check" }
func (c *CheckCmd) NeedsBackends() bool { return true }

func (c *CheckCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *CheckCmd) Run(ctx context.Context, cfg *config.Config, b *service.Backends, args []string, out, errOut io.Writer) int {
	manager := tasks.NewManager(b.Store, b.Completer, NewLogger(cfg, errOut))
	if err := manager.Verify(ctx); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
