// Package config loads pokereval settings from an HCL file with environment overrides.
package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokereval/poker"
)

// DefaultFile is the configuration file looked for when none is given.
const DefaultFile = "pokereval.hcl"

// Config represents the complete configuration
type Config struct {
	Evaluator EvaluatorSettings
	Census    CensusSettings
	Server    ServerSettings
	Log       LogSettings
}

// fileConfig mirrors Config with every block optional.
type fileConfig struct {
	Evaluator *EvaluatorSettings `hcl:"evaluator,block"`
	Census    *CensusSettings    `hcl:"census,block"`
	Server    *ServerSettings    `hcl:"server,block"`
	Log       *LogSettings       `hcl:"log,block"`
}

// EvaluatorSettings selects the evaluation strategy.
type EvaluatorSettings struct {
	Lookup string `hcl:"lookup,optional" env:"POKEREVAL_LOOKUP"`
}

// CensusSettings controls exhaustive enumeration.
type CensusSettings struct {
	Workers int `hcl:"workers,optional" env:"POKEREVAL_WORKERS"`
}

// ServerSettings contains evaluation service configuration
type ServerSettings struct {
	Address   string `hcl:"address,optional" env:"POKEREVAL_ADDRESS"`
	Port      int    `hcl:"port,optional" env:"POKEREVAL_PORT"`
	AccessLog bool   `hcl:"access_log,optional" env:"POKEREVAL_ACCESS_LOG"`
}

// LogSettings controls logger output.
type LogSettings struct {
	Level string `hcl:"level,optional" env:"POKEREVAL_LOG_LEVEL"`
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Evaluator: EvaluatorSettings{Lookup: poker.LookupBinarySearch.String()},
		Census:    CensusSettings{Workers: 8},
		Server:    ServerSettings{Address: "localhost", Port: 8080},
		Log:       LogSettings{Level: "info"},
	}
}

// Load reads filename, falling back to defaults when it does not exist, then
// applies environment overrides.
func Load(filename string) (*Config, error) {
	cfg, err := loadFile(filename)
	if err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment: %w", err)
	}

	return cfg, nil
}

func loadFile(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	var cfg Config
	if fc.Evaluator != nil {
		cfg.Evaluator = *fc.Evaluator
	}
	if fc.Census != nil {
		cfg.Census = *fc.Census
	}
	if fc.Server != nil {
		cfg.Server = *fc.Server
	}
	if fc.Log != nil {
		cfg.Log = *fc.Log
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills zero values from Default.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Evaluator.Lookup == "" {
		c.Evaluator.Lookup = def.Evaluator.Lookup
	}
	if c.Census.Workers == 0 {
		c.Census.Workers = def.Census.Workers
	}
	if c.Server.Address == "" {
		c.Server.Address = def.Server.Address
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := poker.ParseLookup(c.Evaluator.Lookup); err != nil {
		return fmt.Errorf("evaluator: %w", err)
	}
	if c.Census.Workers < 1 || c.Census.Workers > 256 {
		return fmt.Errorf("census: workers must be between 1 and 256, got %d", c.Census.Workers)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if !slices.Contains(validLogLevels, c.Log.Level) {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return nil
}

// LookupStrategy returns the parsed evaluator lookup.
func (c *Config) LookupStrategy() poker.Lookup {
	l, err := poker.ParseLookup(c.Evaluator.Lookup)
	if err != nil {
		return poker.LookupBinarySearch
	}
	return l
}

// ServerAddress returns the full server address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
