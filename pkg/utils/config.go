package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Directory DirectoryConfig
	Booking   BookingConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	URL            string
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	MinConns       int32
	MaxConns       int32
	AcquireTimeout time.Duration
	Migrate        bool
}

type DirectoryConfig struct {
	Window           time.Duration
	NextFlightsLimit int
}

type BookingConfig struct {
	PriceMin            float64
	PriceMax            float64
	CheckInMaxAttempts  int
	CheckInRetryBackoff time.Duration
}

type RateLimitConfig struct {
	Enabled    bool
	StorageURI string
	Default    string
}

// LoadConfig reads envFile (if it exists) and overlays environment variables.
func LoadConfig(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "airline-api")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "postgres")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "airline")
	v.SetDefault("DB_USER", "airline")
	v.SetDefault("DB_PASS", "airline")
	v.SetDefault("DB_MIN_CONNS", 4)
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_ACQUIRE_TIMEOUT", "5s")
	v.SetDefault("DB_MIGRATE", true)
	v.SetDefault("FLIGHT_WINDOW", "12h")
	v.SetDefault("NEXT_FLIGHTS_LIMIT", 3)
	v.SetDefault("PRICE_MIN", 50)
	v.SetDefault("PRICE_MAX", 500)
	v.SetDefault("CHECKIN_MAX_ATTEMPTS", 3)
	v.SetDefault("CHECKIN_RETRY_BACKOFF", "25ms")
	v.SetDefault("RATELIMIT_ENABLED", true)
	v.SetDefault("RATELIMIT_STORAGE_URI", "memory://")
	v.SetDefault("RATELIMIT_DEFAULT", "200 per day;50 per hour")

	if envFile != "" {
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			URL:            v.GetString("DATABASE_URL"),
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetString("DB_PORT"),
			Name:           v.GetString("DB_NAME"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASS"),
			MinConns:       v.GetInt32("DB_MIN_CONNS"),
			MaxConns:       v.GetInt32("DB_MAX_CONNS"),
			AcquireTimeout: v.GetDuration("DB_ACQUIRE_TIMEOUT"),
			Migrate:        v.GetBool("DB_MIGRATE"),
		},
		Directory: DirectoryConfig{
			Window:           v.GetDuration("FLIGHT_WINDOW"),
			NextFlightsLimit: v.GetInt("NEXT_FLIGHTS_LIMIT"),
		},
		Booking: BookingConfig{
			PriceMin:            v.GetFloat64("PRICE_MIN"),
			PriceMax:            v.GetFloat64("PRICE_MAX"),
			CheckInMaxAttempts:  v.GetInt("CHECKIN_MAX_ATTEMPTS"),
			CheckInRetryBackoff: v.GetDuration("CHECKIN_RETRY_BACKOFF"),
		},
		RateLimit: RateLimitConfig{
			Enabled:    v.GetBool("RATELIMIT_ENABLED"),
			StorageURI: v.GetString("RATELIMIT_STORAGE_URI"),
			Default:    v.GetString("RATELIMIT_DEFAULT"),
		},
	}

	if config.Booking.PriceMin <= 0 {
		return nil, errors.New("PRICE_MIN must be positive")
	}
	if config.Booking.PriceMax < config.Booking.PriceMin {
		return nil, errors.New("PRICE_MAX must not be lower than PRICE_MIN")
	}
	if config.Booking.CheckInMaxAttempts < 1 {
		config.Booking.CheckInMaxAttempts = 1
	}
	if config.Directory.NextFlightsLimit < 1 {
		config.Directory.NextFlightsLimit = 3
	}

	return config, nil
}
