package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"pokedex-web/service"
)

// Config holds every runtime setting of the web front-end
type Config struct {
	Env        string
	Server     ServerConfig
	CatalogAPI CatalogAPIConfig
	CORS       CORSConfig
	Chrome     ChromeConfig
}

type ServerConfig struct {
	Host          string
	Port          int
	PublicBaseURL string // Used by the headless browser to reach this server
}

type CatalogAPIConfig struct {
	BaseURL            string
	ArtworkURLTemplate string
	MaxEvolutionHops   int
	FetchConcurrency   int
	RequestMemo        bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type ChromeConfig struct {
	Path string
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.public_base_url", "")
	v.SetDefault("catalog_api.base_url", "https://pokeapi.co/api/v2")
	v.SetDefault("catalog_api.artwork_url_template", service.DefaultArtworkURLTemplate)
	v.SetDefault("catalog_api.max_evolution_hops", service.DefaultMaxEvolutionHops)
	v.SetDefault("catalog_api.fetch_concurrency", service.DefaultFetchConcurrency)
	v.SetDefault("catalog_api.request_memo", true)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("chrome.path", "")
}

// Load reads config.yaml from configPath (optional), then POKEDEX_* environment
// variables, over the defaults. PORT and ENV are honoured for hosted deployments.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath == "" {
		configPath = "."
	}
	v.AddConfigPath(configPath)
	v.SetEnvPrefix("POKEDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if env := os.Getenv("ENV"); env != "" {
		v.Set("env", env)
	}
	if port := strings.TrimPrefix(os.Getenv("PORT"), ":"); port != "" {
		v.Set("server.port", port)
	}

	cfg := &Config{
		Env: v.GetString("env"),
		Server: ServerConfig{
			Host:          v.GetString("server.host"),
			Port:          v.GetInt("server.port"),
			PublicBaseURL: v.GetString("server.public_base_url"),
		},
		CatalogAPI: CatalogAPIConfig{
			BaseURL:            strings.TrimRight(v.GetString("catalog_api.base_url"), "/"),
			ArtworkURLTemplate: v.GetString("catalog_api.artwork_url_template"),
			MaxEvolutionHops:   v.GetInt("catalog_api.max_evolution_hops"),
			FetchConcurrency:   v.GetInt("catalog_api.fetch_concurrency"),
			RequestMemo:        v.GetBool("catalog_api.request_memo"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("cors.allowed_origins"),
		},
		Chrome: ChromeConfig{
			Path: v.GetString("chrome.path"),
		},
	}

	if cfg.Server.PublicBaseURL == "" {
		cfg.Server.PublicBaseURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail at request time
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.CatalogAPI.BaseURL == "" {
		return errors.New("catalog_api.base_url must not be empty")
	}
	if !strings.Contains(c.CatalogAPI.ArtworkURLTemplate, "%d") {
		return fmt.Errorf("catalog_api.artwork_url_template must contain %%d, got %q", c.CatalogAPI.ArtworkURLTemplate)
	}
	return nil
}

// IsProduction reports whether the app runs with ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
