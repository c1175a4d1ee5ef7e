package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	Redis RedisConfig
	JWT   JWTConfig
	AI    AIConfig
	Staff StaffConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// AIConfig configures the generative-AI gateway. BaseURL is only
// overridden in tests.
type AIConfig struct {
	APIKey      string
	BaseURL     string
	TriageModel string
	NotesModel  string
	Timeout     time.Duration
}

// StaffConfig controls seeding of the fixed professional roster.
type StaffConfig struct {
	DemoPassword string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// The .env file is optional; environment variables alone are fine.
	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			return nil, err
		}
	}

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	viper.SetDefault("GEMINI_TRIAGE_MODEL", "gemini-2.5-flash")
	viper.SetDefault("GEMINI_NOTES_MODEL", "gemini-2.5-pro")
	viper.SetDefault("STAFF_DEMO_PASSWORD", "password123")

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	aiTimeout, err := time.ParseDuration(viper.GetString("GEMINI_TIMEOUT"))
	if err != nil {
		aiTimeout = 30 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		AI: AIConfig{
			APIKey:      viper.GetString("GEMINI_API_KEY"),
			BaseURL:     viper.GetString("GEMINI_BASE_URL"),
			TriageModel: viper.GetString("GEMINI_TRIAGE_MODEL"),
			NotesModel:  viper.GetString("GEMINI_NOTES_MODEL"),
			Timeout:     aiTimeout,
		},
		Staff: StaffConfig{
			DemoPassword: viper.GetString("STAFF_DEMO_PASSWORD"),
		},
	}

	return config, nil
}
