// Package config holds the CLI-tunable knobs, loaded from an optional
// TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/vertex-lang/vertex/internal/parser"
)

type Config struct {
	Parser ParserConfig `toml:"parser"`
	Fmt    FmtConfig    `toml:"fmt"`
}

type ParserConfig struct {
	// Maximum module/function/struct/type/expression nesting depth
	MaxDepth int `toml:"max_depth"`
}

type FmtConfig struct {
	// Indent width in spaces
	Indent int `toml:"indent"`
}

func Default() *Config {
	return &Config{
		Parser: ParserConfig{MaxDepth: parser.DefaultMaxDepth},
		Fmt:    FmtConfig{Indent: 4},
	}
}

// Load reads the given TOML file over the defaults. An empty or
// missing path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.Parser.MaxDepth <= 0 {
		return fmt.Errorf("parser.max_depth must be positive, got %d", cfg.Parser.MaxDepth)
	}
	if cfg.Fmt.Indent <= 0 {
		return fmt.Errorf("fmt.indent must be positive, got %d", cfg.Fmt.Indent)
	}
	return nil
}
