// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown command or flag).
	UserError = 1

	// ConfigError indicates missing or invalid configuration.
	ConfigError = 2

	// BackendError indicates a remote store or completion endpoint failure.
	BackendError = 3
)
