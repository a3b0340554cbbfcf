// Package config loads ecotrip's settings.
//
// Settings come from, in increasing precedence: built-in defaults, the
// global config file (~/.ecotrip/config.yaml), a project overlay
// (.ecotrip/config.yaml in the working directory, merged per top-level
// section), and ECOTRIP_* environment variables, which may themselves be
// supplied by a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rshade/ecotrip/internal/greenops"
	"github.com/rshade/ecotrip/internal/logging"
)

// Environment variable names.
const (
	EnvHome           = "ECOTRIP_HOME"
	EnvLogLevel       = "ECOTRIP_LOG_LEVEL"
	EnvOutputFormat   = "ECOTRIP_OUTPUT_FORMAT"
	EnvHistoryBackend = "ECOTRIP_HISTORY_BACKEND"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// History backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	configDirName  = ".ecotrip"
	configFileName = "config.yaml"

	defaultBatchCacheSize = 128
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full set of ecotrip settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	History HistoryConfig `yaml:"history"`
	Batch   BatchConfig   `yaml:"batch"`
	Logging LoggingConfig `yaml:"logging"`

	dir        string
	configPath string
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	DisplayUnit   string `yaml:"display_unit"`
	Equivalencies bool   `yaml:"equivalencies"`
}

// HistoryConfig selects where recent trips are kept. An empty Path uses
// the default file inside the config directory.
type HistoryConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path,omitempty"`
}

// BatchConfig tunes batch evaluation. Concurrency 0 means one worker per CPU.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency"`
	CacheSize   int `yaml:"cache_size"`
}

// LoggingConfig mirrors logging.Config in YAML form.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// New returns a Config with defaults, rooted at dir.
func New(dir string) *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			DisplayUnit:   "kg",
			Equivalencies: true,
		},
		History: HistoryConfig{Backend: BackendFile},
		Batch:   BatchConfig{CacheSize: defaultBatchCacheSize},
		Logging: LoggingConfig{Level: "info", Format: logging.FormatConsole},

		dir:        dir,
		configPath: filepath.Join(dir, configFileName),
	}
}

// ResolveConfigDir returns the ecotrip home directory. flagValue wins, then
// ECOTRIP_HOME, then ~/.ecotrip. If the user home cannot be determined the
// current directory is used.
func ResolveConfigDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvHome); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return configDirName
	}
	return filepath.Join(home, configDirName)
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.dir
}

// ConfigPath returns the file Save writes to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath overrides the file Save writes to.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// HistoryPath returns the storage location for the configured backend.
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	if c.History.Backend == BackendSQLite {
		return filepath.Join(c.dir, historyDBFile)
	}
	return filepath.Join(c.dir, historyJSONFile)
}

// ThemePath returns the theme preference file.
func (c *Config) ThemePath() string {
	return filepath.Join(c.dir, themeFileName)
}

// LoadFile unmarshals the YAML file at path over c. A missing file is not
// an error.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnvOverrides copies ECOTRIP_* variables over the loaded values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = strings.ToLower(v)
	}
	if v := os.Getenv(EnvHistoryBackend); v != "" {
		c.History.Backend = strings.ToLower(v)
	}
}

// Save writes c to ConfigPath, creating the directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON:
	default:
		return fmt.Errorf("%w: output.default_format %q (want table or json)",
			ErrInvalidConfig, c.Output.DefaultFormat)
	}
	if !greenops.IsRecognizedUnit(c.Output.DisplayUnit) {
		return fmt.Errorf("%w: output.display_unit %q", ErrInvalidConfig, c.Output.DisplayUnit)
	}

	switch c.History.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("%w: history.backend %q (want file, sqlite or memory)",
			ErrInvalidConfig, c.History.Backend)
	}

	if c.Batch.Concurrency < 0 {
		return fmt.Errorf("%w: batch.concurrency must not be negative", ErrInvalidConfig)
	}
	if c.Batch.CacheSize <= 0 {
		return fmt.Errorf("%w: batch.cache_size must be positive", ErrInvalidConfig)
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	switch c.Logging.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: logging.format %q (want console or json)",
			ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// ToLoggingConfig converts the logging section for the logging package.
// A configured file switches output to that file.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}
