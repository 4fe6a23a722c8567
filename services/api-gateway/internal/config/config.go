package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string        `mapstructure:"PORT"`
	GRPCPort       string        `mapstructure:"GRPC_PORT"`
	BackendURL     string        `mapstructure:"BACKEND_URL"`
	BackendTimeout time.Duration `mapstructure:"BACKEND_TIMEOUT"`
	AllowedOrigins string        `mapstructure:"ALLOWED_ORIGINS"`
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	HealthInterval time.Duration `mapstructure:"HEALTH_INTERVAL"`
	AppEnv         string        `mapstructure:"APP_ENV"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("PORT", ":3000")
	v.SetDefault("GRPC_PORT", ":3001")
	v.SetDefault("BACKEND_URL", "http://localhost:8000")
	v.SetDefault("BACKEND_TIMEOUT", "0s")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("HEALTH_INTERVAL", "15s")
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()

	for _, key := range []string{
		"PORT", "GRPC_PORT", "BACKEND_URL", "BACKEND_TIMEOUT", "ALLOWED_ORIGINS",
		"REDIS_ADDR", "HEALTH_INTERVAL", "APP_ENV", "LOG_LEVEL",
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

	err = v.Unmarshal(&config)
	return
}
