// Package config loads service settings from the XDG config directory,
// an optional .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	// AppName is the application directory name.
	AppName = "tasktracker"

	// ConfigFile is the optional settings file inside the config directory.
	ConfigFile = "config.toml"

	// EnvFile is the optional dotenv file read from the working directory.
	EnvFile = ".env"

	// DefaultListenAddr is where the HTTP service listens.
	DefaultListenAddr = "127.0.0.1:8000"

	// DefaultListLimit is the number of tasks GET /tasks returns without ?limit.
	DefaultListLimit = 10

	// DefaultStoreBaseURL is the bins endpoint of the hosted JSON store.
	DefaultStoreBaseURL = "https://api.jsonbin.io/v3/b"

	// DefaultModel is the completion model.
	DefaultModel = "@cf/meta/llama-2-7b-chat-int8"

	// DefaultTimeout bounds each outbound call.
	DefaultTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvListenAddr   = "TASKTRACKER_ADDR"
	EnvListLimit    = "TASKTRACKER_LIST_LIMIT"
	EnvStoreBaseURL = "JSONBIN_BASE_URL"
	EnvStoreKey     = "JSONBIN_MASTER_KEY"
	EnvStoreBinID   = "JSONBIN_BIN_ID"
	EnvStoreTimeout = "JSONBIN_TIMEOUT"
	EnvAIBaseURL    = "CLOUDFLARE_BASE_URL"
	EnvAIKey        = "CLOUDFLARE_API_KEY"
	EnvAIAccountID  = "CLOUDFLARE_ACCOUNT_ID"
	EnvAIModel      = "CLOUDFLARE_MODEL"
	EnvAITimeout    = "CLOUDFLARE_TIMEOUT"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	ListenAddr string
	ListLimit  int

	Store StoreConfig
	AI    AIConfig
}

// StoreConfig configures the remote JSON document store.
type StoreConfig struct {
	BaseURL   string
	MasterKey string
	BinID     string
	Timeout   time.Duration
}

// AIConfig configures the completion endpoint.
type AIConfig struct {
	// BaseURL overrides the URL derived from AccountID.
	BaseURL   string
	APIKey    string
	AccountID string
	Model     string
	Timeout   time.Duration
}

// fileConfig mirrors config.toml.
type fileConfig struct {
	ListenAddr string `toml:"listen_addr"`
	ListLimit  int    `toml:"list_limit"`
	Store      struct {
		BaseURL   string `toml:"base_url"`
		MasterKey string `toml:"master_key"`
		BinID     string `toml:"bin_id"`
		Timeout   string `toml:"timeout"`
	} `toml:"store"`
	AI struct {
		BaseURL   string `toml:"base_url"`
		APIKey    string `toml:"api_key"`
		AccountID string `toml:"account_id"`
		Model     string `toml:"model"`
		Timeout   string `toml:"timeout"`
	} `toml:"ai"`
}

// New creates a Config with defaults and the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/tasktracker or $HOME/.config/tasktracker.
func New(configDir string) *Config {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:        dir,
		ListenAddr: DefaultListenAddr,
		ListLimit:  DefaultListLimit,
		Store: StoreConfig{
			BaseURL: DefaultStoreBaseURL,
			Timeout: DefaultTimeout,
		},
		AI: AIConfig{
			Model:   DefaultModel,
			Timeout: DefaultTimeout,
		},
	}
}

// Load builds a Config from defaults, then config.toml in the config
// directory, then .env in the working directory, then the environment.
// Later sources win. Load does not validate; call Validate before use.
func Load(configDir string) (*Config, error) {
	cfg := New(configDir)

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}

	// .env only fills variables that are not already set.
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", EnvFile, err)
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.toml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// HasFile checks if config.toml exists.
func (c *Config) HasFile() bool {
	_, err := os.Stat(c.FilePath())
	return err == nil
}

// Validate reports every required setting that is missing.
// There are no built-in credentials.
func (c *Config) Validate() error {
	var missing []string
	if c.Store.MasterKey == "" {
		missing = append(missing, EnvStoreKey)
	}
	if c.Store.BinID == "" {
		missing = append(missing, EnvStoreBinID)
	}
	if c.AI.APIKey == "" {
		missing = append(missing, EnvAIKey)
	}
	if c.AI.AccountID == "" && c.AI.BaseURL == "" {
		missing = append(missing, EnvAIAccountID)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	if c.ListLimit < 0 {
		return fmt.Errorf("invalid list limit: %d", c.ListLimit)
	}
	return nil
}

func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.FilePath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	setString(&c.ListenAddr, fc.ListenAddr)
	if fc.ListLimit != 0 {
		c.ListLimit = fc.ListLimit
	}
	setString(&c.Store.BaseURL, fc.Store.BaseURL)
	setString(&c.Store.MasterKey, fc.Store.MasterKey)
	setString(&c.Store.BinID, fc.Store.BinID)
	setString(&c.AI.BaseURL, fc.AI.BaseURL)
	setString(&c.AI.APIKey, fc.AI.APIKey)
	setString(&c.AI.AccountID, fc.AI.AccountID)
	setString(&c.AI.Model, fc.AI.Model)

	if err := setDuration(&c.Store.Timeout, fc.Store.Timeout, "store.timeout"); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	if err := setDuration(&c.AI.Timeout, fc.AI.Timeout, "ai.timeout"); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	setString(&c.ListenAddr, os.Getenv(EnvListenAddr))
	setString(&c.Store.BaseURL, os.Getenv(EnvStoreBaseURL))
	setString(&c.Store.MasterKey, os.Getenv(EnvStoreKey))
	setString(&c.Store.BinID, os.Getenv(EnvStoreBinID))
	setString(&c.AI.BaseURL, os.Getenv(EnvAIBaseURL))
	setString(&c.AI.APIKey, os.Getenv(EnvAIKey))
	setString(&c.AI.AccountID, os.Getenv(EnvAIAccountID))
	setString(&c.AI.Model, os.Getenv(EnvAIModel))

	if v := os.Getenv(EnvListLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %s", EnvListLimit, v)
		}
		c.ListLimit = n
	}
	if err := setDuration(&c.Store.Timeout, os.Getenv(EnvStoreTimeout), EnvStoreTimeout); err != nil {
		return err
	}
	return setDuration(&c.AI.Timeout, os.Getenv(EnvAITimeout), EnvAITimeout)
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v, name string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fmt.Errorf("invalid %s: %s", name, v)
	}
	*dst = d
	return nil
}
