// ============================================================================
// Quill - embeddable expression language
// ============================================================================
//
// Package:     config
// Description: Typed configuration for the quill command, loaded from TOML
//              or YAML depending on the file extension
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	qerror "github.com/msto63/quill/foundation/core/error"
	qlog "github.com/msto63/quill/foundation/core/log"
)

// EnvConfigPath names the environment variable holding the config path
const EnvConfigPath = "QUILL_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General     GeneralConfig     `toml:"general" yaml:"general"`
	Interpreter InterpreterConfig `toml:"interpreter" yaml:"interpreter"`
	REPL        REPLConfig        `toml:"repl" yaml:"repl"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	LogFile   string `toml:"log_file" yaml:"log_file"`
}

// InterpreterConfig holds engine limits and the root scope setup
type InterpreterConfig struct {
	MaxCallDepth     int               `toml:"max_call_depth" yaml:"max_call_depth"`
	MaxSourceLength  int               `toml:"max_source_length" yaml:"max_source_length"`
	Timeout          Duration          `toml:"timeout" yaml:"timeout"`
	ParseCacheSize   int               `toml:"parse_cache_size" yaml:"parse_cache_size"` // -1 disables
	Prelude          []string          `toml:"prelude" yaml:"prelude"`
	DisabledBuiltins []string          `toml:"disabled_builtins" yaml:"disabled_builtins"`
	Aliases          map[string]string `toml:"aliases" yaml:"aliases"`
}

// REPLConfig holds interactive session settings
type REPLConfig struct {
	Prompt      string `toml:"prompt" yaml:"prompt"`
	HistoryFile string `toml:"history_file" yaml:"history_file"`
	HistorySize int    `toml:"history_size" yaml:"history_size"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", value.Line)
	}
	return d.UnmarshalText([]byte(value.Value))
}

// MarshalYAML formats the duration as a string
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg
}

// Load loads configuration from a TOML (.toml) or YAML (.yaml, .yml) file
func Load(path string) (*Config, error) {
	path = expandPath(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, qerror.Newf("config file not found: %s", path).WithCode(qerror.CodeMissingConfig)
	}
	if err != nil {
		return nil, qerror.Wrap(err, "failed to read config").WithCode(qerror.CodeConfigError)
	}

	cfg, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, qerror.Wrap(err, fmt.Sprintf("failed to parse config %s", path))
	}
	return cfg, nil
}

// Parse decodes configuration data in the given format ("toml" or "yaml"),
// rejecting unknown keys, then applies defaults and validates
func Parse(data []byte, format string) (*Config, error) {
	var cfg Config

	switch format {
	case "toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, qerror.Wrap(err, "invalid TOML").WithCode(qerror.CodeConfigError)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, key := range undecoded {
				keys[i] = key.String()
			}
			return nil, qerror.Newf("unknown config keys: %s", strings.Join(keys, ", ")).
				WithCode(qerror.CodeConfigError)
		}
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return nil, qerror.Wrap(err, "invalid YAML").WithCode(qerror.CodeConfigError)
		}
	default:
		return nil, qerror.Newf("unsupported config format: %s", format).WithCode(qerror.CodeConfigError)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from QUILL_CONFIG or the first existing
// default location. A missing file is reported with CodeMissingConfig.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		for _, p := range DefaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, qerror.Newf("no config file found, set %s or create quill.toml", EnvConfigPath).
			WithCode(qerror.CodeMissingConfig)
	}

	return Load(path)
}

// DefaultPaths lists the locations searched when QUILL_CONFIG is unset
func DefaultPaths() []string {
	paths := []string{
		"./quill.toml",
		"./quill.yaml",
		"./quill.yml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "quill", "config.toml"),
			filepath.Join(home, ".config", "quill", "config.yaml"),
		)
	}
	return paths
}

// FormatForPath returns "yaml" for .yaml and .yml files and "toml" otherwise
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}

// Encode writes the configuration in the given format
func (c *Config) Encode(w io.Writer, format string) error {
	switch format {
	case "toml":
		return toml.NewEncoder(w).Encode(c)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		return qerror.Newf("unsupported config format: %s", format).WithCode(qerror.CodeInvalidInput)
	}
}

// Validate checks value ranges and the logging settings
func (c *Config) Validate() error {
	if _, err := qlog.ParseLevel(c.General.LogLevel); err != nil {
		return qerror.Wrap(err, "general.log_level").WithCode(qerror.CodeConfigError)
	}
	if _, err := qlog.ParseFormat(c.General.LogFormat); err != nil {
		return qerror.Wrap(err, "general.log_format").WithCode(qerror.CodeConfigError)
	}
	if c.Interpreter.MaxCallDepth < 0 {
		return qerror.Newf("interpreter.max_call_depth must not be negative: %d", c.Interpreter.MaxCallDepth).
			WithCode(qerror.CodeConfigError)
	}
	if c.Interpreter.MaxSourceLength < 0 {
		return qerror.Newf("interpreter.max_source_length must not be negative: %d", c.Interpreter.MaxSourceLength).
			WithCode(qerror.CodeConfigError)
	}
	if c.Interpreter.ParseCacheSize < -1 {
		return qerror.Newf("interpreter.parse_cache_size must be -1 or more: %d", c.Interpreter.ParseCacheSize).
			WithCode(qerror.CodeConfigError)
	}
	if c.Interpreter.Timeout.Duration < 0 {
		return qerror.Newf("interpreter.timeout must not be negative: %s", c.Interpreter.Timeout.Duration).
			WithCode(qerror.CodeConfigError)
	}
	if c.REPL.HistorySize < 0 {
		return qerror.Newf("repl.history_size must not be negative: %d", c.REPL.HistorySize).
			WithCode(qerror.CodeConfigError)
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "quill"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = qlog.DefaultLevel().String()
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}

	// Interpreter
	if c.Interpreter.MaxCallDepth == 0 {
		c.Interpreter.MaxCallDepth = 10000
	}
	if c.Interpreter.MaxSourceLength == 0 {
		c.Interpreter.MaxSourceLength = 1 << 20
	}
	if c.Interpreter.ParseCacheSize == 0 {
		c.Interpreter.ParseCacheSize = 128
	}

	// REPL
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "quill> "
	}
	if c.REPL.HistoryFile == "" {
		c.REPL.HistoryFile = "~/.quill_history"
	}
	if c.REPL.HistorySize == 0 {
		c.REPL.HistorySize = 500
	}
}

// expandEnvVars expands environment variables and ~ in path values
func (c *Config) expandEnvVars() {
	c.General.LogFile = expandPath(c.General.LogFile)
	c.REPL.HistoryFile = expandPath(c.REPL.HistoryFile)
	for i, p := range c.Interpreter.Prelude {
		c.Interpreter.Prelude[i] = expandPath(p)
	}
}

func expandPath(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
