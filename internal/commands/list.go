package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"tasktracker/internal/config"
	"tasktracker/internal/exitcode"
	"tasktracker/internal/output"
	"tasktracker/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// It reads the remote document directly; no service needs to be running.
type ListCmd struct {
	limit     int
	solutions bool
}

// SetLimit sets the limit (for testing). Zero means the configured default.
func (c *ListCmd) SetLimit(limit int) {
	c.limit = limit
}

// SetSolutions toggles printing of solutions (for testing).
func (c *ListCmd) SetSolutions(on bool) {
	c.solutions = on
}

func (c *ListCmd) Name() string        { return "list" }
func (c *ListCmd) Aliases() []string   { return []string{"ls"} }
func (c *ListCmd) Synopsis() string    { return "List stored tasks" }
func (c *ListCmd) Usage() string       { return "tasktracker list [--limit <n>] [--solutions]" }
func (c *ListCmd) NeedsBackends() bool { return true }

func (c *ListCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&c.limit, "limit", "n", 0, "")
	fs.BoolVar(&c.solutions, "solutions", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, b *service.Backends, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.limit < 0 {
		fmt.Fprintf(errOut, "error: invalid limit: %d\n", c.limit)
		return exitcode.UserError
	}
	limit := c.limit
	if limit == 0 {
		limit = cfg.ListLimit
	}

	tasks, err := b.Store.FetchLatest(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	if limit < len(tasks) {
		tasks = tasks[:limit]
	}
	for i, task := range tasks {
		output.FormatTask(out, i, task)
		if c.solutions {
			output.FormatSolution(out, task)
		}
	}
	return exitcode.Success
}
