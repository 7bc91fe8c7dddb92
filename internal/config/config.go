package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the advisor application
type Config struct {
	Environment string
	Port        string
	Tables      TableConfig
	Bedrock     BedrockConfig
	Weather     WeatherConfig
	Timeouts    TimeoutConfig
}

// TableConfig holds the DynamoDB table names for user and plant records
type TableConfig struct {
	UserData         string `validate:"required"`
	PlantDefinitions string `validate:"required"`
}

// BedrockConfig holds language-model service configuration
type BedrockConfig struct {
	Region      string  `validate:"required"`
	ModelID     string  `validate:"required"`
	MaxAttempts int     `validate:"gte=1,lte=10"`
	RatePerSec  float64 `validate:"gt=0"`
}

// WeatherConfig holds weather provider configuration
type WeatherConfig struct {
	BaseURL string `validate:"required,url"`
}

// TimeoutConfig holds the per-call timeout budget. The worst-case sum of
// outbound timeouts must stay under RequestDeadline so that response
// formatting always has slack left before the platform kills the invocation.
type TimeoutConfig struct {
	Database        time.Duration `validate:"gt=0"`
	Weather         time.Duration `validate:"gt=0"`
	Model           time.Duration `validate:"gt=0"`
	RequestDeadline time.Duration `validate:"gt=0"`
}

// Load loads configuration from environment variables with documented
// fallback defaults for local development
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8081")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("USER_DATA_TABLE_NAME", "plant_database_users")
	viper.SetDefault("PLANT_DEFINITIONS_TABLE_NAME", "garden_plants")
	viper.SetDefault("BEDROCK_REGION", "eu-west-2")
	viper.SetDefault("BEDROCK_MODEL_ID", "amazon.nova-lite-v1:0")
	viper.SetDefault("BEDROCK_MAX_ATTEMPTS", 3)
	viper.SetDefault("BEDROCK_RATE_PER_SEC", 2.0)
	viper.SetDefault("WEATHER_BASE_URL", "https://api.open-meteo.com/v1/forecast")
	viper.SetDefault("DB_TIMEOUT_MS", 2000)
	viper.SetDefault("WEATHER_TIMEOUT_MS", 3000)
	viper.SetDefault("MODEL_TIMEOUT_MS", 20000)
	viper.SetDefault("REQUEST_DEADLINE_MS", 28000)

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		Tables: TableConfig{
			UserData:         viper.GetString("USER_DATA_TABLE_NAME"),
			PlantDefinitions: viper.GetString("PLANT_DEFINITIONS_TABLE_NAME"),
		},
		Bedrock: BedrockConfig{
			Region:      viper.GetString("BEDROCK_REGION"),
			ModelID:     viper.GetString("BEDROCK_MODEL_ID"),
			MaxAttempts: viper.GetInt("BEDROCK_MAX_ATTEMPTS"),
			RatePerSec:  viper.GetFloat64("BEDROCK_RATE_PER_SEC"),
		},
		Weather: WeatherConfig{
			BaseURL: viper.GetString("WEATHER_BASE_URL"),
		},
		Timeouts: TimeoutConfig{
			Database:        time.Duration(viper.GetInt("DB_TIMEOUT_MS")) * time.Millisecond,
			Weather:         time.Duration(viper.GetInt("WEATHER_TIMEOUT_MS")) * time.Millisecond,
			Model:           time.Duration(viper.GetInt("MODEL_TIMEOUT_MS")) * time.Millisecond,
			RequestDeadline: time.Duration(viper.GetInt("REQUEST_DEADLINE_MS")) * time.Millisecond,
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// User lookup runs first, then plants and weather in parallel, then the
	// model call. The longest path through the pipeline must fit the deadline.
	worstCase := c.Timeouts.Database + maxDuration(c.Timeouts.Database, c.Timeouts.Weather) + c.Timeouts.Model
	if worstCase >= c.Timeouts.RequestDeadline {
		return fmt.Errorf("timeout budget exceeds request deadline: worst case %s >= deadline %s",
			worstCase, c.Timeouts.RequestDeadline)
	}

	return nil
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
