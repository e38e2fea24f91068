package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the CLI looks for a config file when --config is not given.
const DefaultConfigPath = "resumegraph.yaml"

// Config holds all resumegraph configuration.
type Config struct {
	// LLM adapter used for extraction and type classification
	LLM LLMConfig `yaml:"llm"`

	// Knowledge graph output
	Graph GraphConfig `yaml:"graph"`

	// Portrait slicer
	Slicer SlicerConfig `yaml:"slicer"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// GraphConfig configures knowledge graph generation and output.
type GraphConfig struct {
	Output string `yaml:"output"` // HTML path; the data file sits next to it
	Title  string `yaml:"title"`

	// Drop relationships whose endpoints are not entity ids.
	PruneDanglingRelationships bool `yaml:"prune_dangling_relationships"`
}

// SlicerConfig configures the portrait slicer.
type SlicerConfig struct {
	Rows         int        `yaml:"rows"`
	Cols         int        `yaml:"cols"`
	OutputDir    string     `yaml:"output_dir"`
	Names        [][]string `yaml:"names,omitempty"` // empty uses the built-in mapping
	ContactSheet string     `yaml:"contact_sheet,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:             "openai",
			Timeout:              "120s",
			ClassifyUnknownTypes: true,
		},

		Graph: GraphConfig{
			Output:                     "professional_knowledge_graph.html",
			Title:                      "Professional Knowledge Graph",
			PruneDanglingRelationships: true,
		},

		Slicer: SlicerConfig{
			Rows:      3,
			Cols:      3,
			OutputDir: "heads",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults with env overrides applied.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
// The provider is only ever chosen explicitly, never from which key happens
// to be set.
func (c *Config) applyEnvOverrides() {
	if p := os.Getenv("RESUMEGRAPH_PROVIDER"); strings.TrimSpace(p) != "" {
		c.SetProvider(p)
	}
	if m := strings.TrimSpace(os.Getenv("RESUMEGRAPH_MODEL")); m != "" {
		c.LLM.Model = m
	}
	if level := os.Getenv("RESUMEGRAPH_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// SetProvider selects a provider by name, case-insensitively. Switching to a
// different provider drops the file's api_key, model and base_url, which
// belong to the provider the file was written for.
func (c *Config) SetProvider(provider string) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == c.LLM.Provider {
		return
	}
	c.LLM.Provider = provider
	c.LLM.APIKey = ""
	c.LLM.Model = ""
	c.LLM.BaseURL = ""
}

// ResolveAPIKey returns the configured key, or the selected provider's
// environment variable when the file leaves it empty.
func (c *Config) ResolveAPIKey() string {
	if c.LLM.APIKey != "" {
		return c.LLM.APIKey
	}
	if envVar := APIKeyEnvVar(c.LLM.Provider); envVar != "" {
		return os.Getenv(envVar)
	}
	return ""
}

// GetLLMTimeout returns the LLM timeout as a duration.
func (c *Config) GetLLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return 120 * time.Second
	}
	return d
}

// Validate validates the configuration.
// API keys are checked lazily by the clients, so commands that never call the
// AI (render, slice) work without one.
func (c *Config) Validate() error {
	if !IsValidProvider(c.LLM.Provider) {
		return fmt.Errorf("invalid LLM provider: %s (valid: %v)", c.LLM.Provider, ValidProviders)
	}
	if c.LLM.Timeout != "" {
		if _, err := time.ParseDuration(c.LLM.Timeout); err != nil {
			return fmt.Errorf("invalid LLM timeout %q: %w", c.LLM.Timeout, err)
		}
	}
	if c.Slicer.Rows <= 0 || c.Slicer.Cols <= 0 {
		return fmt.Errorf("slicer grid must be positive, got %dx%d", c.Slicer.Rows, c.Slicer.Cols)
	}
	if strings.TrimSpace(c.Graph.Output) == "" {
		return fmt.Errorf("graph output path is empty")
	}
	return nil
}
