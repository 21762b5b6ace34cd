// Package config handles lazyglob configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/justrnr500/lazyglob/internal/glob"
	"github.com/justrnr500/lazyglob/internal/walk"
)

const (
	// YAMLFile is the name of the YAML config file.
	YAMLFile = ".lazyglob.yaml"
	// TOMLFile is the name of the TOML config file.
	TOMLFile = ".lazyglob.toml"
	// EnvFile is loaded, if present, next to the config file.
	EnvFile = ".env"
)

// Environment variables that override file settings.
const (
	EnvEngine             = "LAZYGLOB_ENGINE"
	EnvSkipHidden         = "LAZYGLOB_SKIP_HIDDEN"
	EnvIgnoreInaccessible = "LAZYGLOB_IGNORE_INACCESSIBLE"
	EnvMaxDepth           = "LAZYGLOB_MAX_DEPTH"
	EnvFormat             = "LAZYGLOB_FORMAT"
)

// Output formats.
const (
	FormatPlain = "plain"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatNull  = "null"
)

var (
	// ErrNotFound is returned by FindFile when no config file exists.
	ErrNotFound = errors.New("no lazyglob config file found")

	// ErrInvalid is returned when a config value is out of range.
	ErrInvalid = errors.New("invalid config")
)

// Config represents the lazyglob configuration.
type Config struct {
	Search SearchConfig `yaml:"search" toml:"search"`
	Output OutputConfig `yaml:"output" toml:"output"`
}

// SearchConfig holds defaults for how trees are walked and matched.
type SearchConfig struct {
	Engine             string `yaml:"engine" toml:"engine"`
	Type               string `yaml:"type,omitempty" toml:"type,omitempty"` // f, d or a
	SkipHidden         bool   `yaml:"skip_hidden" toml:"skip_hidden"`
	IgnoreInaccessible bool   `yaml:"ignore_inaccessible" toml:"ignore_inaccessible"`
	MaxDepth           int    `yaml:"max_depth,omitempty" toml:"max_depth,omitempty"`
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Format string `yaml:"format" toml:"format"`
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			Engine: string(glob.DefaultEngine),
			Type:   "a",
		},
		Output: OutputConfig{
			Format: FormatPlain,
		},
	}
}

func isTOML(path string) bool {
	return filepath.Ext(path) == ".toml"
}

// Load reads the configuration from a file. The format follows the file
// extension; unset fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to a file.
func (c *Config) Save(path string) error {
	var data []byte
	var err error
	if isTOML(path) {
		data, err = toml.Marshal(c)
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// FindFile searches for a config file starting from the given path
// and walking up the directory tree. YAML wins over TOML in one directory.
func FindFile(startPath string) (string, error) {
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}

	current := absPath
	for {
		for _, name := range []string{YAMLFile, TOMLFile} {
			candidate := filepath.Join(current, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("%w (searched from %s)", ErrNotFound, startPath)
		}
		current = parent
	}
}

// Resolve loads the effective configuration. An explicit path must exist;
// otherwise the nearest config file above startDir is used, falling back to
// Default. A .env file beside the config (or in startDir) is loaded best
// effort, then environment overrides are applied and the result validated.
func Resolve(explicitPath, startDir string) (*Config, string, error) {
	path := explicitPath
	if path == "" {
		found, err := FindFile(startDir)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, "", err
		}
		path = found
	}

	cfg := Default()
	envDir := startDir
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, "", err
		}
		cfg = loaded
		envDir = filepath.Dir(path)
	}

	// Best effort: .env may not exist.
	godotenv.Load(filepath.Join(envDir, EnvFile))

	if err := cfg.ApplyEnv(); err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// ApplyEnv overrides settings from LAZYGLOB_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvEngine); v != "" {
		c.Search.Engine = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv(EnvSkipHidden); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvSkipHidden, err)
		}
		c.Search.SkipHidden = b
	}
	if v := os.Getenv(EnvIgnoreInaccessible); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvIgnoreInaccessible, err)
		}
		c.Search.IgnoreInaccessible = b
	}
	if v := os.Getenv(EnvMaxDepth); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvMaxDepth, err)
		}
		c.Search.MaxDepth = n
	}
	return nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	if !glob.Engine(c.Search.Engine).IsValid() {
		return fmt.Errorf("%w: unknown engine %q", ErrInvalid, c.Search.Engine)
	}
	if _, ok := walk.ParseKind(c.Search.Type); !ok {
		return fmt.Errorf("%w: unknown type %q (want f, d or a)", ErrInvalid, c.Search.Type)
	}
	if c.Search.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth must not be negative", ErrInvalid)
	}
	switch c.Output.Format {
	case FormatPlain, FormatJSON, FormatJSONL, FormatNull:
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalid, c.Output.Format)
	}
	return nil
}

// Kinds returns the configured entry kinds.
func (c *Config) Kinds() walk.Kind {
	k, _ := walk.ParseKind(c.Search.Type)
	return k
}

// Options converts the search settings to enumerator options.
func (c *Config) Options() []glob.Option {
	return []glob.Option{
		glob.WithEngine(glob.Engine(c.Search.Engine)),
		glob.WithKinds(c.Kinds()),
		glob.WithSkipHidden(c.Search.SkipHidden),
		glob.WithIgnoreInaccessible(c.Search.IgnoreInaccessible),
		glob.WithMaxDepth(c.Search.MaxDepth),
	}
}
