package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"tasktracker/internal/config"
	"tasktracker/internal/exitcode"
	"tasktracker/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string        { return "help" }
func (c *HelpCmd) Aliases() []string   { return nil }
func (c *HelpCmd) Synopsis() string    { return "Print usage" }
func (c *HelpCmd) Usage() string       { return "tasktracker help" }
func (c *HelpCmd) NeedsBackends() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, b *service.Backends, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  tasktracker                                   Run the HTTP service (same as serve)
  tasktracker serve [common flags] [--addr <host:port>] [--no-verify]
  tasktracker check [common flags]              Verify the remote store and completion endpoint
  tasktracker list [common flags] [--limit <n>] [--solutions]
  tasktracker help
  tasktracker version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  JSONBIN_MASTER_KEY, JSONBIN_BIN_ID          Remote store credentials (required)
  CLOUDFLARE_API_KEY, CLOUDFLARE_ACCOUNT_ID   Completion endpoint credentials (required)
  TASKTRACKER_ADDR, TASKTRACKER_LIST_LIMIT    Listen address and default list size
`
