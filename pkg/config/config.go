package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv   string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	HTTPPort int `mapstructure:"http_port"`

	DBPath      string `mapstructure:"db_path"`
	CatalogPath string `mapstructure:"catalog_path"`
	StoreName   string `mapstructure:"store_name"`
}

// Load reads STOREFRONT_* environment variables over an optional
// storefront.yaml (searched in . and ./config) over built-in defaults.
func Load() (Config, error) {
	return load(viper.New(), "")
}

// LoadFile is Load with an explicit config file instead of the search path.
func LoadFile(path string) (Config, error) {
	return load(viper.New(), path)
}

func load(v *viper.Viper, file string) (Config, error) {
	v.SetDefault("app_env", "dev")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_port", 8080)
	v.SetDefault("db_path", "storefront.db")
	v.SetDefault("catalog_path", "products.json")
	v.SetDefault("store_name", "TechVault")

	v.SetEnvPrefix("storefront")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("storefront")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
