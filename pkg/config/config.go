// Package config resolves runtime settings for the survey builder. Values are
// layered: defaults, then an optional YAML file, then a dotenv file, then the
// process environment. Command-line flags are applied by the caller on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-surveybuilder/pkg/autosave"
	"github.com/goliatone/go-surveybuilder/pkg/store"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "SURVEYBUILDER_"

// Environment variable names, without EnvPrefix.
const (
	EnvStoreDir      = "STORE_DIR"
	EnvStorageKey    = "STORAGE_KEY"
	EnvAutoSaveDelay = "AUTOSAVE_DELAY"
	EnvPreviewPath   = "PREVIEW_PATH"
	EnvVerbose       = "VERBOSE"
)

// Config holds the resolved settings.
type Config struct {
	StoreDir      string        `yaml:"store_dir"`
	StorageKey    string        `yaml:"storage_key"`
	AutoSaveDelay time.Duration `yaml:"autosave_delay"`
	PreviewPath   string        `yaml:"preview_path"`
	Verbose       bool          `yaml:"verbose"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		StoreDir:      ".surveybuilder",
		StorageKey:    store.DefaultKey,
		AutoSaveDelay: autosave.DefaultDelay,
		PreviewPath:   "survey-preview.html",
	}
}

// Option configures Load.
type Option func(*loader)

type loader struct {
	envFile string
	lookup  func(string) (string, bool)
}

// WithEnvFile reads the dotenv file at path instead of ".env". An empty path
// disables dotenv loading.
func WithEnvFile(path string) Option {
	return func(l *loader) {
		l.envFile = strings.TrimSpace(path)
	}
}

// WithLookup replaces os.LookupEnv, mostly for tests.
func WithLookup(lookup func(string) (string, bool)) Option {
	return func(l *loader) {
		if lookup != nil {
			l.lookup = lookup
		}
	}
}

// Load resolves the configuration. path names an optional YAML file; when it
// is set the file must exist. A missing dotenv file is ignored.
func Load(path string, options ...Option) (Config, error) {
	l := &loader{
		envFile: ".env",
		lookup:  os.LookupEnv,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}

	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	dotenv := map[string]string{}
	if l.envFile != "" {
		values, err := godotenv.Read(l.envFile)
		switch {
		case err == nil:
			dotenv = values
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("config: read %s: %w", l.envFile, err)
		}
	}

	get := func(name string) (string, bool) {
		key := EnvPrefix + name
		if value, ok := l.lookup(key); ok {
			return value, true
		}
		value, ok := dotenv[key]
		return value, ok
	}

	if err := cfg.applyEnv(get); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(get func(string) (string, bool)) error {
	if value, ok := get(EnvStoreDir); ok {
		c.StoreDir = strings.TrimSpace(value)
	}
	if value, ok := get(EnvStorageKey); ok {
		c.StorageKey = strings.TrimSpace(value)
	}
	if value, ok := get(EnvAutoSaveDelay); ok {
		delay, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, EnvAutoSaveDelay, err)
		}
		c.AutoSaveDelay = delay
	}
	if value, ok := get(EnvPreviewPath); ok {
		c.PreviewPath = strings.TrimSpace(value)
	}
	if value, ok := get(EnvVerbose); ok {
		verbose, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, EnvVerbose, err)
		}
		c.Verbose = verbose
	}
	return nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if strings.TrimSpace(c.StoreDir) == "" {
		return errors.New("config: store dir is required")
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		return errors.New("config: storage key is required")
	}
	if c.AutoSaveDelay <= 0 {
		return fmt.Errorf("config: autosave delay must be positive, got %s", c.AutoSaveDelay)
	}
	return nil
}
