package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "STARWARSPEDIA"

const (
	TransportREST    = "rest"
	TransportGraphQL = "graphql"
)

type APIConfig struct {
	Transport  string        `mapstructure:"transport"`
	RESTURL    string        `mapstructure:"rest_url"`
	GraphQLURL string        `mapstructure:"graphql_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type LoaderConfig struct {
	Retention time.Duration `mapstructure:"retention"`
}

type UIConfig struct {
	FetchDelay time.Duration `mapstructure:"fetch_delay"`
	Offline    bool          `mapstructure:"offline"`
}

type StateConfig struct {
	Path    string `mapstructure:"path"`
	Persist bool   `mapstructure:"persist"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type ExportConfig struct {
	Dir         string `mapstructure:"dir"`
	Concurrency int    `mapstructure:"concurrency"`
}

// Config holds all runtime configuration.
// Values are populated from .starwarspedia.yaml, STARWARSPEDIA_* env vars, and CLI flags.
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Loader LoaderConfig `mapstructure:"loader"`
	UI     UIConfig     `mapstructure:"ui"`
	State  StateConfig  `mapstructure:"state"`
	Log    LogConfig    `mapstructure:"log"`
	Export ExportConfig `mapstructure:"export"`
}

// Bind maps STARWARSPEDIA_* environment variables onto config keys,
// e.g. STARWARSPEDIA_API_TRANSPORT for api.transport.
func Bind() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, ".starwarspedia")

	viper.SetDefault("api.transport", TransportREST)
	viper.SetDefault("api.rest_url", "https://swapi.dev/api/")
	viper.SetDefault("api.graphql_url", "https://swapi-graphql.netlify.app/.netlify/functions/index")
	viper.SetDefault("api.timeout", 15*time.Second)
	viper.SetDefault("loader.retention", 30*time.Second)
	viper.SetDefault("ui.fetch_delay", time.Duration(0))
	viper.SetDefault("ui.offline", false)
	viper.SetDefault("state.path", filepath.Join(dataDir, "state.db"))
	viper.SetDefault("state.persist", true)
	viper.SetDefault("log.file", filepath.Join(dataDir, "starwarspedia.log"))
	viper.SetDefault("log.level", "info")
	viper.SetDefault("export.dir", filepath.Join(home, "Downloads"))
	viper.SetDefault("export.concurrency", 3)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.API.Transport {
	case TransportREST, TransportGraphQL:
	default:
		return fmt.Errorf("unknown api.transport %q (want %s or %s)", c.API.Transport, TransportREST, TransportGraphQL)
	}
	durations := map[string]time.Duration{
		"api.timeout":      c.API.Timeout,
		"loader.retention": c.Loader.Retention,
		"ui.fetch_delay":   c.UI.FetchDelay,
	}
	for key, d := range durations {
		if d < 0 {
			return fmt.Errorf("%s must not be negative, got %s", key, d)
		}
	}
	if c.Export.Concurrency < 0 {
		return fmt.Errorf("export.concurrency must not be negative, got %d", c.Export.Concurrency)
	}
	return nil
}
