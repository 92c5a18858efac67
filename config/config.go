// Package config loads draftclaim configuration from YAML files.
package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/siddhant230/draftclaim"
	"gopkg.in/yaml.v3"
)

// Provider names accepted in the provider section.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Config carries the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Provider ProviderConfig `yaml:"provider"`
	Output   OutputConfig   `yaml:"output"`
	Database DatabaseConfig `yaml:"database"`
}

// ServerConfig configures the web interface.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// ProviderConfig configures the model endpoint.
type ProviderConfig struct {
	Name           string `yaml:"name"`
	BaseURL        string `yaml:"baseUrl"`
	Model          string `yaml:"model"`
	APIKey         string `yaml:"apiKey"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// OutputConfig configures report export.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// DatabaseConfig configures the run archive.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is present.
// Generation timeouts are generous; local models can take minutes on
// long disclosures.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Host = "localhost"
	cfg.Server.Port = 8990
	cfg.Provider.Name = ProviderOllama
	cfg.Provider.BaseURL = "http://localhost:11434"
	cfg.Provider.TimeoutSeconds = 300
	cfg.Output.Dir = "."
	return cfg
}

// Load reads the configuration file at path, overlaying it on the
// defaults. A missing file yields the defaults. Returns EINVALID for a
// file that cannot be parsed or fails validation.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, draftclaim.WrapErrorf(err, draftclaim.EINVALID, "cannot read config file %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, draftclaim.WrapErrorf(err, draftclaim.EINVALID, "malformed config file %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	switch c.Provider.Name {
	case ProviderOllama, ProviderOpenAI:
	default:
		return draftclaim.Errorf(draftclaim.EINVALID, "unknown provider %q", c.Provider.Name)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return draftclaim.Errorf(draftclaim.EINVALID, "server port %d out of range", c.Server.Port)
	}
	if c.Provider.TimeoutSeconds < 0 {
		return draftclaim.Errorf(draftclaim.EINVALID, "provider timeout must not be negative")
	}
	return nil
}

// Timeout returns the generation timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Provider.TimeoutSeconds) * time.Second
}
