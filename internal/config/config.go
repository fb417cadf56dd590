package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      App      `mapstructure:"app"`
	AI       AI       `mapstructure:"ai"`
	Search   Search   `mapstructure:"search"`
	Pipeline Pipeline `mapstructure:"pipeline"`
	Output   Output   `mapstructure:"output"`
	Logging  Logging  `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	DataDir  string `mapstructure:"data_dir"`
}

// AI holds generation backend configuration. Generation is optional;
// with no provider set the template renderers handle all synthesis.
type AI struct {
	Provider string       `mapstructure:"provider"` // "", "gemini", or "openai"
	Gemini   GeminiConfig `mapstructure:"gemini"`
	OpenAI   OpenAIConfig `mapstructure:"openai"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout string `mapstructure:"timeout"`
}

// OpenAIConfig holds OpenAI configuration
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
	Timeout string `mapstructure:"timeout"`
}

// Search holds search provider configuration
type Search struct {
	DefaultProvider string          `mapstructure:"default_provider"`
	MaxResults      int             `mapstructure:"max_results"`
	Timeout         string          `mapstructure:"timeout"`
	Language        string          `mapstructure:"language"`
	Providers       SearchProviders `mapstructure:"providers"`
}

// SearchProviders holds configuration for all search providers
type SearchProviders struct {
	Google     GoogleSearchConfig `mapstructure:"google"`
	DuckDuckGo DuckDuckGoConfig   `mapstructure:"duckduckgo"`
}

// GoogleSearchConfig holds Google Custom Search configuration
type GoogleSearchConfig struct {
	APIKey   string `mapstructure:"api_key"`
	SearchID string `mapstructure:"search_id"`
}

// DuckDuckGoConfig holds DuckDuckGo configuration
type DuckDuckGoConfig struct {
	RateLimit string `mapstructure:"rate_limit"`
}

// Pipeline holds content pipeline configuration
type Pipeline struct {
	MaxQueries      int    `mapstructure:"max_queries"`
	ResultsPerQuery int    `mapstructure:"results_per_query"`
	SearchTimeout   string `mapstructure:"search_timeout"`
}

// Output holds output configuration
type Output struct {
	Directory string `mapstructure:"directory"`
	Format    string `mapstructure:"format"`
}

// Logging holds logging configuration
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

var globalConfig *Config

// Load loads the configuration from defaults, an optional config file,
// and environment variables.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".contentforge")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := postProcessConfig(config); err != nil {
		return nil, fmt.Errorf("error post-processing config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.data_dir", ".contentforge")

	// AI defaults
	viper.SetDefault("ai.provider", "")
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash-preview-05-20")
	viper.SetDefault("ai.gemini.timeout", "30s")
	viper.SetDefault("ai.openai.model", "gpt-4o-mini")
	viper.SetDefault("ai.openai.base_url", "https://api.openai.com/v1")
	viper.SetDefault("ai.openai.timeout", "30s")

	// Search defaults
	viper.SetDefault("search.default_provider", "duckduckgo")
	viper.SetDefault("search.max_results", 10)
	viper.SetDefault("search.timeout", "15s")
	viper.SetDefault("search.language", "en")
	viper.SetDefault("search.providers.duckduckgo.rate_limit", "1s")

	// Pipeline defaults
	viper.SetDefault("pipeline.max_queries", 8)
	viper.SetDefault("pipeline.results_per_query", 5)
	viper.SetDefault("pipeline.search_timeout", "10s")

	// Output defaults
	viper.SetDefault("output.directory", "output")
	viper.SetDefault("output.format", "markdown")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stderr")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	bindEnvKeys("ai.openai.api_key", []string{
		"OPENAI_API_KEY",
	})

	bindEnvKeys("ai.provider", []string{
		"LLM_PROVIDER",
		"GENERATION_PROVIDER",
	})

	bindEnvKeys("search.providers.google.api_key", []string{
		"GOOGLE_CUSTOM_SEARCH_API_KEY",
		"GOOGLE_CSE_API_KEY",
		"GOOGLE_SEARCH_API_KEY",
	})

	bindEnvKeys("search.providers.google.search_id", []string{
		"GOOGLE_CUSTOM_SEARCH_ID",
		"GOOGLE_CSE_ID",
		"GOOGLE_SEARCH_ENGINE_ID",
	})

	bindEnvKeys("search.default_provider", []string{
		"SEARCH_PROVIDER",
		"DEFAULT_SEARCH_PROVIDER",
	})

	bindEnvKeys("output.directory", []string{
		"OUTPUT_DIR",
		"CONTENT_OUTPUT_DIR",
	})

	bindEnvKeys("app.debug", []string{
		"DEBUG",
		"CONTENTFORGE_DEBUG",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// postProcessConfig applies post-processing to configuration values
func postProcessConfig(config *Config) error {
	if config.App.DataDir != "" {
		config.App.DataDir = expandPath(config.App.DataDir)
	}
	if config.Output.Directory != "" {
		config.Output.Directory = expandPath(config.Output.Directory)
	}

	durations := map[string]string{
		"ai.gemini.timeout":       config.AI.Gemini.Timeout,
		"ai.openai.timeout":       config.AI.OpenAI.Timeout,
		"search.timeout":          config.Search.Timeout,
		"pipeline.search_timeout": config.Pipeline.SearchTimeout,
	}

	for key, duration := range durations {
		if duration != "" {
			if _, err := time.ParseDuration(duration); err != nil {
				return fmt.Errorf("invalid duration for %s: %s", key, duration)
			}
		}
	}

	return nil
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// validateConfig ensures required configuration is present
func validateConfig(config *Config) error {
	var errors []string

	if config.Search.DefaultProvider != "" {
		switch config.Search.DefaultProvider {
		case "google":
			if config.Search.Providers.Google.APIKey == "" || config.Search.Providers.Google.SearchID == "" {
				errors = append(errors, "Google Custom Search requires both API key and Search ID. Set GOOGLE_CUSTOM_SEARCH_API_KEY and GOOGLE_CUSTOM_SEARCH_ID")
			}
		case "duckduckgo", "mock":
			// No credentials needed for these providers
		default:
			errors = append(errors, fmt.Sprintf("Unknown search provider: %s. Supported: google, duckduckgo, mock", config.Search.DefaultProvider))
		}
	}

	switch config.AI.Provider {
	case "":
		// Template rendering only, nothing to validate
	case "gemini":
		if config.AI.Gemini.APIKey == "" {
			errors = append(errors, "Gemini generation requires an API key. Set GEMINI_API_KEY or ai.gemini.api_key")
		}
	case "openai":
		if config.AI.OpenAI.APIKey == "" {
			errors = append(errors, "OpenAI generation requires an API key. Set OPENAI_API_KEY or ai.openai.api_key")
		}
	default:
		errors = append(errors, fmt.Sprintf("Unknown generation provider: %s. Supported: gemini, openai", config.AI.Provider))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Convenience getters for commonly used configuration values
func GetSearch() Search { return Get().Search }

func GetOutputDirectory() string { return Get().Output.Directory }

func GetSearchProvider() string { return Get().Search.DefaultProvider }

func IsDebugMode() bool { return Get().App.Debug }

// GetGoogleSearchConfig returns the Google Custom Search credentials.
func GetGoogleSearchConfig() (string, string) {
	c := Get().Search.Providers.Google
	return c.APIKey, c.SearchID
}

// HasValidGoogleSearch returns true if Google Custom Search is properly configured
func HasValidGoogleSearch() bool {
	apiKey, searchID := GetGoogleSearchConfig()
	return isValidAPIKey(apiKey) && isValidSearchID(searchID)
}

// isValidAPIKey checks if an API key is valid (not empty and not a placeholder)
func isValidAPIKey(apiKey string) bool {
	if apiKey == "" {
		return false
	}

	placeholders := []string{
		"your-api-key", "your-google-key", "your-google-api-key",
		"your-openai-key", "YOUR_API_KEY", "PLACEHOLDER", "TODO", "CHANGE_ME",
	}
	for _, placeholder := range placeholders {
		if apiKey == placeholder {
			return false
		}
	}

	return true
}

// isValidSearchID checks if a search ID is valid (not empty and not a placeholder)
func isValidSearchID(searchID string) bool {
	if searchID == "" {
		return false
	}

	placeholders := []string{
		"your-search-engine-id", "your-search-id", "your-cse-id",
		"YOUR_SEARCH_ID", "PLACEHOLDER", "TODO", "CHANGE_ME",
	}
	for _, placeholder := range placeholders {
		if searchID == placeholder {
			return false
		}
	}

	return true
}

// Reset clears the global configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viper.Reset()
}
