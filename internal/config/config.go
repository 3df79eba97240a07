// Package config loads ram's layered configuration: built-in defaults,
// overlaid by an optional TOML file, overlaid by RAM_* environment
// variables. Every recognized key is statically enumerated in the Config
// struct; unknown keys in the file are ignored.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigFileName is the well-known name of the user config file inside the
// global store directory.
const ConfigFileName = "config.toml"

// DefaultPath returns the well-known config file location,
// ~/.ragged_memory/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(home, ".ragged_memory", ConfigFileName), nil
}

// Load reads configuration from the given TOML file, then overlays
// environment variable overrides (RAM_*). An empty path means the default
// location. A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	k := koanf.New(".")

	// Start from defaults; the unmarshal below only overwrites keys that
	// were actually present in the file or environment.
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: RAM_SCOPE__DEFAULT_SCOPE ->
	// scope.default_scope, etc. A double underscore separates sections.
	if err := k.Load(env.Provider("RAM_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "RAM_")), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// validProviders is the set of recognized embedding provider values.
var validProviders = map[EmbeddingProvider]bool{
	ProviderOllama: true,
	ProviderOpenAI: true,
}

// validScopes is the closed set of scope names accepted for default_scope.
var validScopes = map[string]bool{
	"local":  true,
	"global": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if !validProviders[c.Storage.EmbeddingProvider] {
		return fmt.Errorf("invalid embedding_provider %q: must be one of ollama, openai", c.Storage.EmbeddingProvider)
	}
	if c.Storage.EmbeddingModel == "" {
		return fmt.Errorf("embedding_model is required")
	}
	if c.Storage.VectorDimensions <= 0 {
		return fmt.Errorf("vector_dimensions must be positive, got %d", c.Storage.VectorDimensions)
	}
	if !validScopes[c.Scope.DefaultScope] {
		return fmt.Errorf("invalid default_scope %q: must be one of local, global", c.Scope.DefaultScope)
	}
	if c.Paths.GlobalDir == "" {
		return fmt.Errorf("global_dir is required")
	}
	if c.Paths.LocalDir == "" {
		return fmt.Errorf("local_dir is required")
	}
	return nil
}

// GlobalDir returns the global store directory with a leading ~ expanded.
func (c *Config) GlobalDir() (string, error) {
	dir := c.Paths.GlobalDir
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding %s: %w", dir, err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	return filepath.Abs(dir)
}
