package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for dlbcheck and any other binary
// built on top of this module. It is intentionally small: this library has
// no server, no persistence, and no auth to configure, so unlike the
// project this package is adapted from, Config carries only the parser's
// own behavior and its logging.
type Config struct {
	Parser  ParserOptions `yaml:"parser"`
	Logging LoggingConfig `yaml:"logging"`
}

// ParserOptions controls behavior the parser leaves configurable, such as
// the linker's handling of broken references.
type ParserOptions struct {
	// StrictReferenceResolution makes an external or internal node pointer
	// that cannot be resolved a parse error rather than a warning. Off by
	// default: a work-in-progress project commonly has dangling pointers
	// to nodes that haven't been written yet.
	StrictReferenceResolution bool `yaml:"strict_reference_resolution"`

	// AllowedTranslationCommands is the command whitelist the translation
	// file parser (pkg/translate) enforces on every translated body it
	// parses: a translation body may reintroduce an <<input>> command but
	// nothing else. Defaults to ["input"] when
	// empty.
	AllowedTranslationCommands []string `yaml:"allowed_translation_commands"`
}

// LoggingConfig mirrors pkg/logger.LoggerConfig so that a dlbcheck.yaml can
// configure the CLI's logger the same way a long-running server configures
// its own.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration dlbcheck runs with when no config
// file is given.
func DefaultConfig() *Config {
	return &Config{
		Parser: ParserOptions{
			StrictReferenceResolution: false,
			AllowedTranslationCommands: []string{"input"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from a YAML file, falling back to
// DefaultConfig for any field the file does not set.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(config.Parser.AllowedTranslationCommands) == 0 {
		config.Parser.AllowedTranslationCommands = []string{"input"}
	}
	return config, nil
}

// SaveConfig writes configuration to a YAML file.
func SaveConfig(filename string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for obviously invalid values.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json", "":
	default:
		return fmt.Errorf("invalid logging format: %s", c.Logging.Format)
	}
	return nil
}

// CommandWhitelist returns the translation parser's allowed-command set as
// a lookup map, ready to hand to script.NewBodyParser.
func (p ParserOptions) CommandWhitelist() map[string]bool {
	names := p.AllowedTranslationCommands
	if len(names) == 0 {
		names = []string{"input"}
	}
	out := make(map[string]bool, len(names))
	for _, name := range names {
		out[name] = true
	}
	return out
}
