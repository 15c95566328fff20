package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/efebarandurmaz/depscope/internal/qualitygate"
)

// Config holds all application configuration.
type Config struct {
	Analysis AnalysisConfig         `mapstructure:"analysis"`
	Graph    GraphConfig            `mapstructure:"graph"`
	Temporal TemporalConfig         `mapstructure:"temporal"`
	Tracing  TracingConfig          `mapstructure:"tracing"`
	Gates    qualitygate.GateConfig `mapstructure:"gates"`
	Log      LogConfig              `mapstructure:"log"`
}

type AnalysisConfig struct {
	// Format is the default output format (dot, mermaid, json, html).
	Format string `mapstructure:"format"`

	// ExcludePatterns are glob patterns matched against file paths
	// during scanning and against modules during filtering.
	ExcludePatterns []string `mapstructure:"exclude_patterns"`

	// IncludeThirdParty keeps third-party modules in the graph.
	IncludeThirdParty bool `mapstructure:"include_third_party"`

	// IncludeStdlib keeps standard library modules in the graph.
	IncludeStdlib bool `mapstructure:"include_stdlib"`

	// CacheSize is the number of parsed files kept in the extraction cache.
	CacheSize int `mapstructure:"cache_size"`
}

type GraphConfig struct {
	URI      string `mapstructure:"uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Project  string `mapstructure:"project"`
}

type TemporalConfig struct {
	Host      string `mapstructure:"host"`
	Namespace string `mapstructure:"namespace"`
	TaskQueue string `mapstructure:"task_queue"`
}

type TracingConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
	Environment  string  `mapstructure:"environment"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Format:            "dot",
			IncludeThirdParty: true,
			IncludeStdlib:     true,
			CacheSize:         4096,
		},
		Temporal: TemporalConfig{
			Host:      "localhost:7233",
			Namespace: "default",
			TaskQueue: "depscope",
		},
		Tracing: TracingConfig{
			SampleRate:  1.0,
			Environment: "development",
		},
		Gates: *qualitygate.DefaultConfig(),
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks configuration for issues and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	switch c.Analysis.Format {
	case "", "dot", "mermaid", "json", "html":
	default:
		warnings = append(warnings, fmt.Sprintf("analysis format '%s' is not a known renderer", c.Analysis.Format))
	}

	if c.Analysis.CacheSize < 0 {
		warnings = append(warnings, fmt.Sprintf("analysis cache_size %d is negative", c.Analysis.CacheSize))
	}

	if c.Graph.URI != "" && c.Graph.Username == "" {
		warnings = append(warnings, "graph uri is configured but username is empty")
	}

	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1.0 {
		warnings = append(warnings, fmt.Sprintf("tracing sample_rate %.2f is outside range [0.0, 1.0]", c.Tracing.SampleRate))
	}

	if c.Gates.MaxUnresolvedRate < 0 || c.Gates.MaxUnresolvedRate > 1.0 {
		warnings = append(warnings, fmt.Sprintf("gates max_unresolved_rate %.2f is outside range [0.0, 1.0]", c.Gates.MaxUnresolvedRate))
	}

	return warnings
}

// Load reads configuration from file and environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("DEPSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Validate configuration and print warnings
	if warnings := cfg.Validate(); len(warnings) > 0 {
		for _, warning := range warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
		}
	}

	return cfg, nil
}
