package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/rshade/ecotrip/internal/logging"
)

// LoadOptions locate the files Load reads. Empty fields use defaults.
type LoadOptions struct {
	// HomeDir overrides ECOTRIP_HOME and ~/.ecotrip.
	HomeDir string
	// ConfigFile overrides <home>/config.yaml.
	ConfigFile string
	// WorkDir is searched for .env and .ecotrip/config.yaml. Defaults to
	// the process working directory.
	WorkDir string
}

// Load builds the effective Config. When the global config file is
// malformed, Load still returns a usable Config (defaults plus overlay and
// env) together with the parse error, so callers can choose between
// warning and failing.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	workDir := opts.WorkDir
	if workDir == "" {
		if wd, err := os.Getwd(); err == nil {
			workDir = wd
		}
	}

	LoadDotEnv(ctx, workDir)

	cfg := New(ResolveConfigDir(opts.HomeDir))
	if opts.ConfigFile != "" {
		cfg.SetConfigPath(opts.ConfigFile)
	}

	fileErr := cfg.LoadFile(cfg.ConfigPath())
	if fileErr != nil {
		cfg = New(cfg.Dir())
		if opts.ConfigFile != "" {
			cfg.SetConfigPath(opts.ConfigFile)
		}
	}

	if projectDir := ProjectDir(workDir); projectDir != "" {
		mergeProjectConfig(ctx, cfg, projectDir)
	}

	cfg.ApplyEnvOverrides()
	return cfg, fileErr
}

// LoadDotEnv loads dir/.env into the process environment. Variables that
// are already set keep their values.
func LoadDotEnv(ctx context.Context, dir string) {
	if dir == "" {
		return
	}
	path := filepath.Join(dir, ".env")
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Err(err).
			Str("path", path).
			Msg("failed to load .env file")
	}
}

// ProjectDir returns workDir/.ecotrip when it holds a config.yaml.
func ProjectDir(workDir string) string {
	if workDir == "" {
		return ""
	}
	dir := filepath.Join(workDir, configDirName)
	if _, err := os.Stat(filepath.Join(dir, configFileName)); err != nil {
		return ""
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}

// mergeProjectConfig overlays projectDir/config.yaml onto cfg. A failed
// merge leaves cfg untouched.
func mergeProjectConfig(ctx context.Context, cfg *Config, projectDir string) {
	overlayPath := filepath.Join(projectDir, configFileName)
	if filepath.Clean(overlayPath) == filepath.Clean(cfg.ConfigPath()) {
		return
	}

	merged := *cfg
	if err := ShallowMergeYAML(&merged, overlayPath); err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global settings")
		return
	}
	*cfg = merged
}

// InitProject writes a default config and .gitignore into
// workDir/.ecotrip. It refuses to overwrite an existing config unless
// force is set.
func InitProject(workDir string, force bool) (string, bool, error) {
	dir := filepath.Join(workDir, configDirName)
	cfg := New(dir)
	if err := writeDefault(cfg, force); err != nil {
		return "", false, err
	}
	created, err := EnsureGitignore(dir)
	if err != nil {
		return "", false, fmt.Errorf("creating .gitignore: %w", err)
	}
	return cfg.ConfigPath(), created, nil
}

// InitGlobal writes a default config into homeDir.
func InitGlobal(homeDir string, force bool) (string, error) {
	cfg := New(homeDir)
	if err := writeDefault(cfg, force); err != nil {
		return "", err
	}
	return cfg.ConfigPath(), nil
}

// ErrConfigExists is returned by the init helpers when a config is present.
var ErrConfigExists = errors.New("configuration file already exists, use --force to overwrite")

func writeDefault(cfg *Config, force bool) error {
	if !force {
		_, err := os.Stat(cfg.ConfigPath())
		if err == nil {
			return ErrConfigExists
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", cfg.ConfigPath(), err)
		}
	}
	return cfg.Save()
}
