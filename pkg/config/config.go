// Package config loads service configuration from YAML files with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config gives access to loaded configuration values.
type Config interface {
	GetString(key string) string
	IsSet(key string) bool
	ConfigFileUsed() string
	// Unmarshal decodes the whole configuration into out using mapstructure tags.
	Unmarshal(out interface{}) error
}

type viperConfig struct {
	v *viper.Viper
}

func (c *viperConfig) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *viperConfig) IsSet(key string) bool {
	return c.v.IsSet(key)
}

func (c *viperConfig) ConfigFileUsed() string {
	return c.v.ConfigFileUsed()
}

func (c *viperConfig) Unmarshal(out interface{}) error {
	return c.v.Unmarshal(out)
}

const configDir = "configs"

// Load reads configs/<serviceName>.yaml (or the file named by CONFIG_PATH).
// Every key can be overridden by an environment variable named
// <SERVICENAME>_<KEY> with dots replaced by underscores, e.g. WALLET_ACCESS_PASSWORD.
// Keys present in defaults are known to viper even when the file omits them,
// which lets environment variables set them.
func Load(serviceName string, defaults map[string]interface{}) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(strings.ToUpper(serviceName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "dev"
		}
		v.SetConfigName(serviceName)
		v.AddConfigPath(filepath.Join(configDir, env))
		v.AddConfigPath(configDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Running from defaults and environment only.
	}

	return &viperConfig{v: v}, nil
}
