package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"tasktracker/internal/cli"
	"tasktracker/internal/commands"
	"tasktracker/internal/config"
	"tasktracker/internal/exitcode"
	"tasktracker/internal/service"
	"tasktracker/internal/testutil"
)

// testFactory creates a backend factory that returns the given fakes.
func testFactory(store *testutil.FakeStore, completer *testutil.FakeCompleter) cli.BackendFactory {
	return func(ctx context.Context, cfg *config.Config) (*service.Backends, error) {
		return &service.Backends{Store: store, Completer: completer}, nil
	}
}

// setCredentials provides every required setting and isolates the test
// from any .env in the working directory.
func setCredentials(t *testing.T) {
	t.Helper()
	testChdir(t, t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvListLimit, "")
	t.Setenv(config.EnvStoreKey, "test-master-key")
	t.Setenv(config.EnvStoreBinID, "test-bin")
	t.Setenv(config.EnvAIKey, "test-api-key")
	t.Setenv(config.EnvAIAccountID, "test-account")
	t.Setenv(config.EnvListenAddr, "127.0.0.1:0")
}

func newDispatcher(store *testutil.FakeStore) *cli.Dispatcher {
	return cli.NewDispatcher(commands.DefaultRegistry, testFactory(store, testutil.NewFakeCompleter()))
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	dispatcher := newDispatcher(testutil.NewFakeStore())

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"unknowncmd"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher := newDispatcher(testutil.NewFakeStore())

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	dispatcher := newDispatcher(testutil.NewFakeStore())

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr.String() != "" {
		t.Errorf("expected no stderr, got %q", stderr.String())
	}
	if !bytes.Contains(stdout.Bytes(), []byte("Usage:")) {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_HelpFlag(t *testing.T) {
	dispatcher := newDispatcher(testutil.NewFakeStore())

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--help"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "Usage: tasktracker list [--limit <n>] [--solutions]\n"
	if stdout.String() != expected {
		t.Errorf("expected %q, got %q", expected, stdout.String())
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	dispatcher := newDispatcher(testutil.NewFakeStore())

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"version"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr.String() != "" {
		t.Errorf("expected no stderr, got %q", stderr.String())
	}
	if stdout.String() != "tasktracker 0.1.0\n" {
		t.Errorf("expected 'tasktracker 0.1.0\\n', got %q", stdout.String())
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	dispatcher := newDispatcher(testutil.NewFakeStore())

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help", "--unknown"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: --unknown\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_MissingCredentials(t *testing.T) {
	testChdir(t, t.TempDir())
	for _, name := range []string{config.EnvStoreKey, config.EnvStoreBinID, config.EnvAIKey, config.EnvAIAccountID, config.EnvAIBaseURL} {
		t.Setenv(name, "")
	}
	store := testutil.NewFakeStore()
	dispatcher := newDispatcher(store)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--config", t.TempDir()}, &stdout, &stderr)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if !strings.HasPrefix(stderr.String(), "error: config error: missing required settings") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
	if store.FetchCalls != 0 {
		t.Errorf("expected no remote calls, got %d", store.FetchCalls)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	setCredentials(t)
	factory := func(ctx context.Context, cfg *config.Config) (*service.Backends, error) {
		return nil, errors.New("dial failed")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"check"}, &stdout, &stderr)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	expected := "error: backend error: dial failed\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_ListAlias(t *testing.T) {
	setCredentials(t)
	store := testutil.NewFakeStore(
		service.Task{Text: "first", Solution: "a"},
		service.Task{Text: "second", Solution: "b"},
	)
	dispatcher := newDispatcher(store)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"ls", "-n", "1", "--config", t.TempDir()}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	expected := "   0  [ ] first\n"
	if stdout.String() != expected {
		t.Errorf("expected %q, got %q", expected, stdout.String())
	}
}

func TestDispatcher_NoArgsServes(t *testing.T) {
	setCredentials(t)
	store := testutil.NewFakeStore(service.Task{Text: "kept"})
	dispatcher := newDispatcher(store)

	// A cancelled context makes serve shut down right after binding.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(ctx, nil, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	if store.FetchCalls == 0 {
		t.Error("expected serve to load the task list")
	}
	if !strings.Contains(stderr.String(), "listening") {
		t.Errorf("expected listening log, got %q", stderr.String())
	}
}

// testChdir changes the working directory to dir for the duration of the
// test and restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
