// Package config loads app config from env and an optional .env file using Viper.
package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds all service configuration loaded from the environment.
type Config struct {
	// Port is the HTTP listen port.
	Port string `mapstructure:"PORT"`
	// PostgresDSN is the Postgres connection string for the users table.
	PostgresDSN string `mapstructure:"POSTGRES_DSN"`
	// MongoURI and MongoDB locate the micropost collection.
	MongoURI string `mapstructure:"MONGO_URI"`
	MongoDB  string `mapstructure:"MONGO_DB"`
	// RedisAddr and RedisPassword locate the session store.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	// BcryptCost is the bcrypt cost factor (4-31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
}

// Load reads .env (if present), then builds and validates Config from the
// environment. Missing .env is ignored (e.g. in CI). Env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("POSTGRES_DSN", "")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "microblog")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("BCRYPT_COST", 12)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.PostgresDSN == "" {
		return nil, errors.New("config: POSTGRES_DSN must be set")
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	return &cfg, nil
}
