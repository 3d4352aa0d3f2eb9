package config

import (
	"errors"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingMongoURI is returned when no document store address is configured.
var ErrMissingMongoURI = errors.New("MONGODB_URI is not set; define it in the environment or .env")

type Config struct {
	Env            string
	Port           string
	MongoURI       string
	MongoDatabase  string
	RedisAddr      string
	RedisPassword  string
	LogLevel       string
	RateLimitRPS   float64
	RateLimitBurst int
	FeaturedLimit  int64
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("MONGODB_DATABASE", "devhub")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 1)
	v.SetDefault("FEATURED_LIMIT", 6)

	// AutomaticEnv only resolves keys viper already knows about.
	for _, key := range []string{"MONGODB_URI", "REDIS_ADDR", "REDIS_PASSWORD"} {
		_ = v.BindEnv(key)
	}
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:            v.GetString("APP_ENV"),
		Port:           v.GetString("PORT"),
		MongoURI:       strings.TrimSpace(v.GetString("MONGODB_URI")),
		MongoDatabase:  v.GetString("MONGODB_DATABASE"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		FeaturedLimit:  v.GetInt64("FEATURED_LIMIT"),
	}

	if cfg.MongoURI == "" {
		return nil, ErrMissingMongoURI
	}
	if cfg.Port != "" && cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}
	if cfg.RateLimitBurst < 1 {
		cfg.RateLimitBurst = 1
	}
	if cfg.FeaturedLimit < 1 {
		cfg.FeaturedLimit = 6
	}
	return cfg, nil
}
