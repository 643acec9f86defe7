// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/mcp-prompt-server/src/mcp-server/templates"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Environment variables read by loadConfig.
const (
	EnvConfigFile = "MCP_PROMPTS_CONFIG_FILE"
	EnvPromptsDir = "MCP_PROMPTS_DIR"
	EnvHTTPAddr   = "MCP_PROMPTS_HTTP_ADDR"
)

// Default configuration values.
const (
	DefaultPromptsDirName           = "prompts"
	DefaultHTTPAddr                 = ":8000"
	DefaultReadHeaderTimeoutSeconds = 10
	DefaultShutdownTimeoutSeconds   = 5
	DefaultLogFormat                = "text"
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config represents the prompt server configuration.
//
// The configuration can be loaded from a JSON or YAML file named by the --config flag or
// the MCP_PROMPTS_CONFIG_FILE environment variable, with defaults applied for any missing values.
// Supported file extensions: .json, .yaml, .yml
type Config struct {
	// Prompts: Location of the prompt library
	Prompts struct {
		// Dir: Directory holding <name>.txt prompt files
		Dir string `json:"dir" yaml:"dir"`
	} `json:"prompts" yaml:"prompts"`

	// HTTP: Settings for the HTTP API subcommand
	HTTP struct {
		// Addr: Listen address (can also be set via MCP_PROMPTS_HTTP_ADDR env var)
		Addr string `json:"addr" yaml:"addr"`
		// ReadHeaderTimeout: Seconds allowed to read request headers
		ReadHeaderTimeout int `json:"readHeaderTimeoutSeconds" yaml:"readHeaderTimeoutSeconds"`
		// ShutdownTimeout: Seconds allowed for graceful shutdown
		ShutdownTimeout int `json:"shutdownTimeoutSeconds" yaml:"shutdownTimeoutSeconds"`
	} `json:"http" yaml:"http"`

	// Log: Diagnostic output settings (always written to stderr)
	Log struct {
		// Format: "text" or "json"
		Format string `json:"format" yaml:"format"`
		// Silent: Suppress all diagnostic output
		Silent bool `json:"silent" yaml:"silent"`
	} `json:"log" yaml:"log"`
}

// ReadHeaderTimeout returns the HTTP read-header timeout as a duration.
func (c *Config) ReadHeaderTimeout() time.Duration {
	return time.Duration(c.HTTP.ReadHeaderTimeout) * time.Second
}

// ShutdownTimeout returns the HTTP graceful shutdown timeout as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.HTTP.ShutdownTimeout) * time.Second
}

// defaultConfig returns a Config with every default applied.
func defaultConfig() *Config {
	config := &Config{}
	config.Prompts.Dir = filepath.Join(posix.ExecutableDir(), DefaultPromptsDirName)
	config.HTTP.Addr = DefaultHTTPAddr
	config.HTTP.ReadHeaderTimeout = DefaultReadHeaderTimeoutSeconds
	config.HTTP.ShutdownTimeout = DefaultShutdownTimeoutSeconds
	config.Log.Format = DefaultLogFormat
	return config
}

// detectConfigFormat determines the configuration file format based on file extension.
// It uses case-insensitive extension matching; anything other than .yaml/.yml is JSON.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// validateConfigDocument checks raw configuration data against the embedded JSON Schema.
//
// Parameters:
//   - data: Raw configuration file contents
//   - format: The configuration format (configFormatJSON or configFormatYAML)
//
// Returns:
//   - error: A parse error, or a single error listing every schema violation
//
// YAML documents are decoded to generic values first so that both formats are
// checked against the same schema. An empty document is treated as an empty object.
func validateConfigDocument(data []byte, format configFormat) error {
	var doc any
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	if doc == nil {
		doc = map[string]any{}
	}

	schema, err := templates.MagicEmbed.ReadFile(templates.ConfigSchemaFile)
	if err != nil {
		return fmt.Errorf("failed to load config schema: %w", err)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("failed to validate config file: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid config file: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// loadConfig loads the prompt server configuration from a JSON or YAML file or applies defaults.
//
// Parameters:
//   - configPath: Path to the configuration file (optional, can be empty)
//     Supported formats: .json, .yaml, .yml
//
// Returns:
//   - A pointer to the loaded Config struct with defaults applied
//   - An error if the configuration file cannot be read, parsed or fails schema validation
//
// Configuration Priority:
//  1. Default values are set
//  2. MCP_PROMPTS_CONFIG_FILE environment variable is checked if configPath is empty
//  3. Config file values override defaults (if file exists and is valid)
//  4. Environment variables override config file values (MCP_PROMPTS_DIR, MCP_PROMPTS_HTTP_ADDR)
//
// Command-line flags are applied by the caller on top of the returned value.
func loadConfig(configPath string) (*Config, error) {
	config := defaultConfig()

	if configPath == "" {
		configPath = os.Getenv(EnvConfigFile)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		format := detectConfigFormat(configPath)
		if err := validateConfigDocument(data, format); err != nil {
			return nil, err
		}
		defaultDir := config.Prompts.Dir
		if err := unmarshalConfig(data, config, format); err != nil {
			return nil, err
		}

		// Restore defaults for values the schema allows but the server cannot use
		if config.HTTP.ReadHeaderTimeout <= 0 {
			config.HTTP.ReadHeaderTimeout = DefaultReadHeaderTimeoutSeconds
		}
		if config.HTTP.ShutdownTimeout <= 0 {
			config.HTTP.ShutdownTimeout = DefaultShutdownTimeoutSeconds
		}
		if config.Log.Format == "" {
			config.Log.Format = DefaultLogFormat
		}

		// Relative prompt directories are resolved against the config file location
		if config.Prompts.Dir != defaultDir && !filepath.IsAbs(config.Prompts.Dir) {
			config.Prompts.Dir = filepath.Join(filepath.Dir(configPath), config.Prompts.Dir)
		}
	}

	if dir := os.Getenv(EnvPromptsDir); dir != "" {
		config.Prompts.Dir = dir
	}
	if addr := os.Getenv(EnvHTTPAddr); addr != "" {
		config.HTTP.Addr = addr
	}

	return config, nil
}
