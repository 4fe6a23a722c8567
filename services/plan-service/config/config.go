package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port               string        `mapstructure:"PORT"`
	DBHost             string        `mapstructure:"DB_HOST"`
	DBPort             string        `mapstructure:"DB_PORT"`
	DBUser             string        `mapstructure:"DB_USER"`
	DBPassword         string        `mapstructure:"DB_PASSWORD"`
	DBName             string        `mapstructure:"DB_NAME"`
	AccessSecret       string        `mapstructure:"ACCESS_SECRET"`
	TokenTTL           time.Duration `mapstructure:"TOKEN_TTL"`
	MaxUnfinishedPlans int           `mapstructure:"MAX_UNFINISHED_PLANS"`
	AppEnv             string        `mapstructure:"APP_ENV"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
}

// DSN renders the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

var ErrMissingSecret = errors.New("ACCESS_SECRET is not set")

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("PORT", ":8000")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("TOKEN_TTL", "30m")
	v.SetDefault("MAX_UNFINISHED_PLANS", 3)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()

	for _, key := range []string{
		"PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"ACCESS_SECRET", "TOKEN_TTL", "MAX_UNFINISHED_PLANS", "APP_ENV", "LOG_LEVEL",
	} {
		if err = v.BindEnv(key); err != nil {
			return
		}
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	if config.AccessSecret == "" {
		err = ErrMissingSecret
	}
	return
}
