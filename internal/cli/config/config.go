// Package config loads layered configuration for the datavisuals CLI and
// server. Precedence, highest first: flags > environment > config file >
// defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/SreeTarak2/datavisuals/internal/chart"
)

// Config file names searched in the working directory.
const (
	ConfigFileName    = "datavisuals.yaml"
	ConfigFileNameAlt = "datavisuals.yml"

	// envPrefix maps DATAVISUALS_STORE_PATH -> store_path.
	envPrefix = "DATAVISUALS_"
)

// Defaults.
const (
	DefaultDatasetsDir    = "datasets"
	DefaultStorePath      = ".datavisuals/catalog.db"
	DefaultPort           = 8080
	DefaultFallbackPolicy = string(chart.FallbackEmpty)
)

// Config holds the full runtime configuration.
type Config struct {
	// DatasetsDir is watched by the server for CSV files to (re)load.
	DatasetsDir string `koanf:"datasets_dir"`

	// HierarchiesFile optionally seeds hierarchy definitions from YAML.
	HierarchiesFile string `koanf:"hierarchies_file"`

	// StorePath is the SQLite catalog database.
	StorePath string `koanf:"store_path"`

	// Port the HTTP API listens on.
	Port int `koanf:"port"`

	// Watch enables the dataset-directory watcher.
	Watch bool `koanf:"watch"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`

	// FallbackPolicy is the chart builder's behavior when it cannot
	// produce real data: "empty" or "fabricate".
	FallbackPolicy string `koanf:"fallback_policy"`

	// Synonyms overlays extra column-name synonyms onto the default table.
	Synonyms map[string][]string `koanf:"synonyms"`
}

// Policy returns the validated fallback policy.
func (c *Config) Policy() (chart.FallbackPolicy, error) {
	return chart.ParseFallbackPolicy(c.FallbackPolicy)
}

// Resolver builds the column resolver from the configured synonym overlay.
func (c *Config) Resolver() *chart.Resolver {
	if len(c.Synonyms) == 0 {
		return chart.NewResolver()
	}
	return chart.NewResolverWithSynonyms(chart.MergeSynonyms(c.Synonyms))
}

// findConfigFile returns the config file to use: the explicit path when
// given, else the first of datavisuals.yaml / datavisuals.yml that exists.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load builds a Config from defaults, an optional config file, DATAVISUALS_
// environment variables, and explicitly-set CLI flags.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"datasets_dir":    DefaultDatasetsDir,
		"store_path":      DefaultStorePath,
		"port":            DefaultPort,
		"fallback_policy": DefaultFallbackPolicy,
		"watch":           false,
		"verbose":         false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if _, err := cfg.Policy(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
