package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AllowedOrigins    string `mapstructure:"ALLOWED_ORIGINS"`
	DefaultLanguage   string `mapstructure:"DEFAULT_LANGUAGE"`

	// Remote booking/identity API.
	APIBaseURL        string `mapstructure:"API_BASE_URL"`
	APITimeoutSeconds int    `mapstructure:"API_TIMEOUT_SECONDS"`

	// Redis configuration. Only the tab-scoped client state lives here.
	RedisAddr             string `mapstructure:"REDIS_ADDR"`
	RedisPassword         string `mapstructure:"REDIS_PASSWORD"`
	RedisClientStateDB    int    `mapstructure:"REDIS_CLIENT_STATE_DB"`
	ClientStateTTLMinutes int    `mapstructure:"CLIENT_STATE_TTL_MINUTES"`
	ClientStateSecret     string `mapstructure:"CLIENT_STATE_SECRET"`

	// Cookies and routing.
	CookieDomain     string `mapstructure:"COOKIE_DOMAIN"`
	BookingEntryPath string `mapstructure:"BOOKING_ENTRY_PATH"`

	VerificationPollIntervalMS int `mapstructure:"VERIFICATION_POLL_INTERVAL_MS"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real deployments inject the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 60)
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("DEFAULT_LANGUAGE", "nb")
	viper.SetDefault("API_BASE_URL", "http://localhost:5000/api")
	viper.SetDefault("API_TIMEOUT_SECONDS", 15)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CLIENT_STATE_DB", 0)
	viper.SetDefault("CLIENT_STATE_TTL_MINUTES", 30)
	viper.SetDefault("CLIENT_STATE_SECRET", "")
	viper.SetDefault("COOKIE_DOMAIN", "")
	viper.SetDefault("BOOKING_ENTRY_PATH", "/")
	viper.SetDefault("VERIFICATION_POLL_INTERVAL_MS", 1000)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// APITimeout returns the per-call timeout for the remote API client.
func (c Config) APITimeout() time.Duration {
	if c.APITimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

// ClientStateTTL returns how long tab-scoped values survive in Redis.
func (c Config) ClientStateTTL() time.Duration {
	if c.ClientStateTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.ClientStateTTLMinutes) * time.Minute
}

// PollInterval returns the verification poller tick.
func (c Config) PollInterval() time.Duration {
	if c.VerificationPollIntervalMS <= 0 {
		return time.Second
	}
	return time.Duration(c.VerificationPollIntervalMS) * time.Millisecond
}

// EntryPath is where a visitor without a loadable booking session is sent.
func (c Config) EntryPath() string {
	if c.BookingEntryPath == "" {
		return "/"
	}
	return c.BookingEntryPath
}
