package cli

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Server settings
	HTTPAddress string

	// Model settings
	Provider        string
	Model           string
	GeminiAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	Temperature     float32
	MaxOutputTokens int

	// Processing settings
	MaxAttempts         int
	ConfidenceThreshold float64
	Concurrency         int

	// TaxonomyPath optionally points at a YAML taxonomy file. When empty
	// the built-in taxonomy is used.
	TaxonomyPath string
}

// LoadConfig loads configuration from files and environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Configure environment variables - do this BEFORE reading config
	v.AutomaticEnv()
	v.SetEnvPrefix("")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envMappings := map[string]string{
		"HTTPAddress":         "HTTP_ADDRESS",
		"Provider":            "SENTIMENT_PROVIDER",
		"Model":               "SENTIMENT_MODEL",
		"GeminiAPIKey":        "GEMINI_API_KEY",
		"OpenAIAPIKey":        "OPENAI_API_KEY",
		"AnthropicAPIKey":     "ANTHROPIC_API_KEY",
		"Temperature":         "SENTIMENT_TEMPERATURE",
		"MaxOutputTokens":     "SENTIMENT_MAX_OUTPUT_TOKENS",
		"MaxAttempts":         "SENTIMENT_MAX_ATTEMPTS",
		"ConfidenceThreshold": "SENTIMENT_CONFIDENCE_THRESHOLD",
		"Concurrency":         "SENTIMENT_CONCURRENCY",
		"TaxonomyPath":        "SENTIMENT_TAXONOMY_PATH",
	}

	for configKey, envVar := range envMappings {
		if err := v.BindEnv(configKey, envVar); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variable %s for %s", envVar, configKey)
		}
	}

	v.SetConfigName("sentimenthub_config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.sentimenthub")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug().Msg("Config file not found, using environment variables and defaults")
	} else {
		log.Info().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	log.Debug().Msgf("Config loaded: Provider=%s, Model=%s, MaxAttempts=%d",
		config.Provider, config.Model, config.MaxAttempts)

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTPAddress", ":8080")
	v.SetDefault("Provider", "gemini")
	v.SetDefault("Model", "gemini-2.0-flash-001")
	v.SetDefault("Temperature", 0.0)
	v.SetDefault("MaxOutputTokens", 1024)
	v.SetDefault("MaxAttempts", 3)
	v.SetDefault("ConfidenceThreshold", 0.3)
	v.SetDefault("Concurrency", 5)
}

// validateConfig validates the required configuration fields.
func validateConfig(config *Config) error {
	switch config.Provider {
	case "gemini":
		if config.GeminiAPIKey == "" {
			return fmt.Errorf("missing required environment variable: GEMINI_API_KEY")
		}
	case "openai":
		if config.OpenAIAPIKey == "" {
			return fmt.Errorf("missing required environment variable: OPENAI_API_KEY")
		}
	case "anthropic":
		if config.AnthropicAPIKey == "" {
			return fmt.Errorf("missing required environment variable: ANTHROPIC_API_KEY")
		}
	default:
		return fmt.Errorf("unknown provider %q (expected gemini, openai or anthropic)", config.Provider)
	}

	if config.MaxAttempts < 1 {
		return fmt.Errorf("SENTIMENT_MAX_ATTEMPTS must be at least 1, got %d", config.MaxAttempts)
	}

	if config.Concurrency < 1 {
		return fmt.Errorf("SENTIMENT_CONCURRENCY must be at least 1, got %d", config.Concurrency)
	}

	return nil
}
