package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultDataset   = "data/supplychain.json"
	DefaultOutput    = "table"
	DefaultServerURL = "http://localhost:8080"
	DefaultTimeout   = 10 * time.Second
	DefaultFile      = "~/.supplyctl.yaml"
)

// Config is the top-level configuration for supplyctl.
type Config struct {
	CLI CLIConfig `yaml:"cli"`
}

// CLIConfig holds all CLI-side settings. Flags override every field.
type CLIConfig struct {
	// Dataset is a JSON file path or a database DSN.
	Dataset string `yaml:"dataset"`

	// Strict rejects datasets with malformed records.
	Strict bool `yaml:"strict"`

	// Seed fixes the random source. 0 seeds from the clock.
	Seed uint64 `yaml:"seed"`

	// Output is one of: table | json.
	Output string `yaml:"output"`

	// Server locates a running supplylens-server for the `health` command.
	Server ServerConn `yaml:"server"`
}

// ServerConn describes how to reach supplylens-server.
type ServerConn struct {
	URL string `yaml:"url"`

	// KeyEnv is the name of the environment variable that holds the API key.
	KeyEnv string `yaml:"key_env"`

	// Header is the HTTP header to send the key in. Defaults to "x-api-key".
	Header string `yaml:"header"`

	Timeout time.Duration `yaml:"timeout"`
}

// Key returns the API key value resolved from the environment.
// Returns empty string if KeyEnv is unset or the variable is not found.
func (s ServerConn) Key() string {
	if s.KeyEnv == "" {
		return ""
	}
	return os.Getenv(s.KeyEnv)
}

// EffectiveHeader returns the configured header name, or the default "x-api-key".
func (s ServerConn) EffectiveHeader() string {
	if s.Header != "" {
		return s.Header
	}
	return "x-api-key"
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("config: expand %q: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Resolve loads path when given. With an empty path it loads DefaultFile if
// it exists and returns the defaults otherwise.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg, err := Load(DefaultFile)
	if errors.Is(err, os.ErrNotExist) {
		return defaults(), nil
	}
	return cfg, err
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		CLI: CLIConfig{
			Dataset: DefaultDataset,
			Output:  DefaultOutput,
			Server: ServerConn{
				URL:     DefaultServerURL,
				Timeout: DefaultTimeout,
			},
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if cfg.CLI.Dataset == "" {
		return fmt.Errorf("cli.dataset is required")
	}
	switch cfg.CLI.Output {
	case "table", "json":
	default:
		return fmt.Errorf("cli.output %q unknown: want table|json", cfg.CLI.Output)
	}
	if cfg.CLI.Server.Timeout <= 0 {
		return fmt.Errorf("cli.server.timeout must be positive")
	}
	return nil
}
