// Package config loads numberplater.toml, applies environment overrides
// and validates the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// FileName is the config file looked up from the working directory upwards.
const FileName = "numberplater.toml"

// Environment variables that override file values.
const (
	EnvJobs     = "NUMBERPLATER_JOBS"
	EnvOutput   = "NUMBERPLATER_OUTPUT"
	EnvCacheDir = "NUMBERPLATER_CACHE_DIR"
	EnvColor    = "NUMBERPLATER_COLOR"
)

// Config is the merged configuration.
type Config struct {
	Analyze AnalyzeConfig `toml:"analyze"`
	Scan    ScanConfig    `toml:"scan"`
	Output  OutputConfig  `toml:"output"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

// AnalyzeConfig is the [analyze] table.
type AnalyzeConfig struct {
	// Families used when no family flag is given. Empty means all.
	Families   []string `toml:"families" validate:"omitempty,dive,family"`
	IgnoreYear bool     `toml:"ignore_year"`
	Limit      int      `toml:"limit" validate:"min=0"`
}

// ScanConfig is the [scan] table. Jobs 0 uses every CPU and MemoSize 0
// disables the in-memory memo.
type ScanConfig struct {
	Jobs      int    `toml:"jobs" validate:"min=0,max=256"`
	Output    string `toml:"output" validate:"required"`
	Cache     bool   `toml:"cache"`
	CacheDir  string `toml:"cache_dir"`
	Prefilter bool   `toml:"prefilter"`
	MemoSize  int    `toml:"memo_size" validate:"min=0"`
}

// OutputConfig is the [output] table shared by every command.
type OutputConfig struct {
	Color  string `toml:"color" validate:"oneof=auto on off"`
	Format string `toml:"format" validate:"oneof=pretty plain json"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Scan: ScanConfig{
			Output:    "words.json",
			Cache:     true,
			Prefilter: true,
			MemoSize:  4096,
		},
		Output: OutputConfig{
			Color:  "auto",
			Format: "pretty",
		},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load builds the configuration for startDir: defaults, then the nearest
// numberplater.toml, then a .env next to it (or in startDir), then the
// process environment. The result is validated.
func Load(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return finish(Default(), startDir)
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit config file.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if err := decodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	cfg.Path = path
	return finish(cfg, filepath.Dir(path))
}

func finish(cfg Config, envDir string) (Config, error) {
	if err := loadDotEnv(envDir); err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		if cfg.Path != "" {
			return Config{}, fmt.Errorf("%s: %w", cfg.Path, err)
		}
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("analyze", "families") && len(cfg.Analyze.Families) == 0 {
		return fmt.Errorf("%s: [analyze].families is empty; remove it to select every family", path)
	}
	return nil
}

// loadDotEnv reads dir/.env if present. Variables already set win.
func loadDotEnv(dir string) error {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvJobs); ok && v != "" {
		jobs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvJobs, err)
		}
		cfg.Scan.Jobs = jobs
	}
	if v, ok := os.LookupEnv(EnvOutput); ok && v != "" {
		cfg.Scan.Output = v
	}
	if v, ok := os.LookupEnv(EnvCacheDir); ok && v != "" {
		cfg.Scan.CacheDir = v
	}
	if v, ok := os.LookupEnv(EnvColor); ok && v != "" {
		cfg.Output.Color = strings.ToLower(v)
	}
	return nil
}
