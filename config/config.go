// Package config loads an InterpreterConfig: the tokenizer knobs,
// REPL prompt, default-built-ins flag, log settings, and optional
// backend selections (spec §3/§5, SPEC_FULL's "Configuration" ambient
// stack section).
package config

import (
	"fmt"

	"github.com/go-ini/ini"
	"github.com/go-viper/mapstructure/v2"
	homedir "github.com/mitchellh/go-homedir"

	"github.com/mwantia/interp/log"
)

// InterpreterConfig holds every knob a host may set before constructing
// an interpreter. Zero value is meaningless; use Default or Load.
type InterpreterConfig struct {
	// Tokenizer conventions, spec §3/§9's TokenizerConfig.
	PrefixChars      string `mapstructure:"prefix_chars"`
	DelimiterChars   string `mapstructure:"delimiter_chars"`
	CaseSensitive    bool   `mapstructure:"case_sensitive"`

	// REPL, spec §4.7/§4.8.
	Prompt           string `mapstructure:"prompt"`
	FilterPrecedence string `mapstructure:"filter_precedence"`

	// spec §4.2: built-ins are opt-in via a construction flag.
	DefaultBuiltins bool `mapstructure:"default_builtins"`

	// Ambient logging (SPEC_FULL "Logging").
	LogLevel   string `mapstructure:"log_level"`
	LogFile    string `mapstructure:"log_file"`
	NoColor    bool   `mapstructure:"no_color"`
	NoTerminal bool   `mapstructure:"no_terminal_log"`

	// SPEC_FULL domain stack: optional history backend.
	HistoryPath string `mapstructure:"history_path"`

	// SPEC_FULL domain stack: optional OptionStore mirror.
	StoreBackend string `mapstructure:"store_backend"` // "", "consul", "postgres"
	ConsulAddr   string `mapstructure:"consul_addr"`
	ConsulPrefix string `mapstructure:"consul_prefix"`
	PostgresDSN  string `mapstructure:"postgres_dsn"`

	Verbose bool `mapstructure:"verbose"`
}

// Default returns the spec-mandated defaults with every optional
// backend disabled.
func Default() *InterpreterConfig {
	return &InterpreterConfig{
		PrefixChars:      "/-",
		DelimiterChars:   "=:",
		CaseSensitive:    false,
		Prompt:           "> ",
		FilterPrecedence: "<>",
		DefaultBuiltins:  true,
		LogLevel:         "info",
	}
}

// Load reads an INI file at path (expanding a leading "~") and decodes
// the keys of all its sections, flattened into one set (a key repeated
// in a later section overrides the earlier one), onto a copy of
// Default(). A missing path simply
// returns the defaults; a malformed file is an error.
func Load(path string) (*InterpreterConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("config: expand %q: %w", path, err)
	}

	file, err := ini.Load(expanded)
	if err != nil {
		return nil, fmt.Errorf("config: load %q: %w", expanded, err)
	}

	raw := make(map[string]any)
	for _, section := range file.Sections() {
		for _, key := range section.Keys() {
			raw[key.Name()] = key.Value()
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("config: build decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("config: decode %q: %w", expanded, err)
	}

	return cfg, nil
}

// LogLevelValue parses LogLevel into a log.LogLevel, defaulting to Info.
func (c *InterpreterConfig) LogLevelValue() log.LogLevel {
	if c.LogLevel == "" {
		return log.Info
	}
	return log.Parse(c.LogLevel)
}
