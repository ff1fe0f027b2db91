package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Predictor PredictorConfig
	Mistral   MistralConfig
	Maps      MapsConfig
	Email     EmailConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type MongoConfig struct {
	URI  string
	Name string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// PredictorConfig points at the ovarian cyst prediction service.
type PredictorConfig struct {
	BaseURL string
}

type MistralConfig struct {
	URL    string
	APIKey string
}

type MapsConfig struct {
	BaseURL string
	APIKey  string
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Missing .env is fine in containerized deploys where everything
	// comes from the environment.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * 24 * time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port: getString("APP_PORT", "5050"),
			Env:  getString("APP_ENV", "development"),
		},
		Mongo: MongoConfig{
			URI:  getString("MONGODB_URI", "mongodb://localhost:27017"),
			Name: getString("MONGODB_NAME", "sistercheck"),
		},
		Redis: RedisConfig{
			Host:     getString("REDIS_HOST", "localhost"),
			Port:     getString("REDIS_PORT", "6379"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       getString("JWT_SECRET", "secret"),
			AccessExpiry: accessExpiry,
		},
		Predictor: PredictorConfig{
			BaseURL: getString("PYTHON_API_URL", "http://localhost:5000"),
		},
		Mistral: MistralConfig{
			URL:    getString("MISTRAL_URL", "https://api.mistral.ai/v1/chat/completions"),
			APIKey: viper.GetString("MISTRAL_API_KEY"),
		},
		Maps: MapsConfig{
			BaseURL: getString("GOOGLE_MAPS_BASE_URL", "https://maps.googleapis.com/maps/api/place/nearbysearch/json"),
			APIKey:  viper.GetString("GOOGLE_MAPS_API_KEY"),
		},
		Email: EmailConfig{
			Host:     getString("EMAIL_HOST", "smtp.gmail.com"),
			Port:     getInt("EMAIL_PORT", 587),
			User:     viper.GetString("EMAIL_USER"),
			Password: viper.GetString("EMAIL_PASS"),
			Name:     getString("EMAIL_NAME", "SisterCheck"),
		},
	}

	return config, nil
}

func getString(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := viper.GetInt(key); v != 0 {
		return v
	}
	return fallback
}
