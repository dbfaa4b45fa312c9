// Package config loads chatmem settings from an optional JSON/YAML file and
// CHATMEM_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hupe1980/chatmem/core"
)

// Config represents the main chatmem configuration
type Config struct {
	// Session is the default session id used by the CLI
	Session string `json:"session" mapstructure:"session"`

	// Memory store
	Memory MemoryConfig `json:"memory" mapstructure:"memory"`

	// Models are tried in order; later entries are fallbacks
	Models []ModelConfig `json:"models" mapstructure:"models"`

	// Instruction overrides the agent's system prompt template
	Instruction string `json:"instruction" mapstructure:"instruction"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// MemoryConfig holds memory store configuration
type MemoryConfig struct {
	Path     string `json:"path" mapstructure:"path"` // empty keeps memory in process only
	MaxItems int    `json:"max_items" mapstructure:"max_items"`
	Window   int    `json:"window" mapstructure:"window"` // entries sent to the model as context
}

// ModelConfig describes one provider in the fallback chain
type ModelConfig struct {
	Provider    string   `json:"provider" mapstructure:"provider"` // openai, groq, anthropic, mock
	Model       string   `json:"model" mapstructure:"model"`
	Temperature *float64 `json:"temperature" mapstructure:"temperature"` // nil keeps the provider default
	MaxTokens   int64    `json:"max_tokens" mapstructure:"max_tokens"`
	BaseURL     string   `json:"base_url" mapstructure:"base_url"`
	APIKey      string   `json:"api_key" mapstructure:"api_key"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `json:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `json:"format" mapstructure:"format"` // console, json
}

var providerKeyEnv = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"groq":      "GROQ_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"mock":      "",
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Session: "demo_user",
		Memory: MemoryConfig{
			Path:     "memory.json",
			MaxItems: core.DefaultMaxItems,
			Window:   5,
		},
		Models: []ModelConfig{
			{Provider: "openai", Model: "gpt-4o-mini", Temperature: Float(0.2), MaxTokens: 600},
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Validate checks the configuration for values the store and agent reject.
func (c *Config) Validate() error {
	if c.Memory.MaxItems <= 0 {
		return fmt.Errorf("memory.max_items must be positive, got %d", c.Memory.MaxItems)
	}
	if c.Memory.Window < 0 {
		return fmt.Errorf("memory.window cannot be negative, got %d", c.Memory.Window)
	}
	if len(c.Models) == 0 {
		return fmt.Errorf("at least one model must be configured")
	}
	for i, m := range c.Models {
		if _, ok := providerKeyEnv[strings.ToLower(m.Provider)]; !ok {
			return fmt.Errorf("models[%d]: unknown provider %q", i, m.Provider)
		}
		if m.Temperature != nil && (*m.Temperature < 0 || *m.Temperature > 2) {
			return fmt.Errorf("models[%d]: temperature must be within [0, 2], got %v", i, *m.Temperature)
		}
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

// Float returns a pointer to v, for optional numeric settings.
func Float(v float64) *float64 { return &v }

// ResolveAPIKey returns the configured key or the provider's conventional
// environment variable.
func (m ModelConfig) ResolveAPIKey() string {
	if m.APIKey != "" {
		return m.APIKey
	}
	if env := providerKeyEnv[strings.ToLower(m.Provider)]; env != "" {
		return os.Getenv(env)
	}
	return ""
}

// Name returns provider/model for display.
func (m ModelConfig) Name() string {
	if m.Model == "" {
		return m.Provider
	}
	return m.Provider + "/" + m.Model
}
