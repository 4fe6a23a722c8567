package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	GatewayURL string `mapstructure:"GATEWAY_URL"`
	TokenFile  string `mapstructure:"TOKEN_FILE"`
	AppEnv     string `mapstructure:"APP_ENV"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`
}

// flagKeys maps command-line flags onto config keys. Flags win over env and file.
var flagKeys = map[string]string{
	"gateway":    "GATEWAY_URL",
	"token-file": "TOKEN_FILE",
	"log-level":  "LOG_LEVEL",
}

// LoadConfig reads app.env from path, then the environment, then any flags that were set.
// defaultTokenFile is used when nothing else names a token file.
func LoadConfig(path string, flags *pflag.FlagSet, defaultTokenFile string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("GATEWAY_URL", "http://localhost:3000")
	v.SetDefault("TOKEN_FILE", defaultTokenFile)
	v.SetDefault("LOG_LEVEL", "warn")

	v.AutomaticEnv()
	for _, key := range []string{"GATEWAY_URL", "TOKEN_FILE", "APP_ENV", "LOG_LEVEL"} {
		if err = v.BindEnv(key); err != nil {
			return
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err = v.BindPFlag(key, f); err != nil {
				err = fmt.Errorf("bind --%s: %w", name, err)
				return
			}
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
