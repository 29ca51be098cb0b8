package config

import (
	"fmt"

	pkgconfig "github.com/wekeepgrowing/shop-wallet/pkg/config"
	"github.com/wekeepgrowing/shop-wallet/pkg/logger"
)

const serviceName = "wallet"

type Config struct {
	Service  ServiceConfig  `mapstructure:"service"`
	Database DatabaseConfig `mapstructure:"database"`
	MongoDB  MongoDBConfig  `mapstructure:"mongodb"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      logger.Config  `mapstructure:"log"`
	Access   AccessConfig   `mapstructure:"access"`
	Wallet   WalletConfig   `mapstructure:"wallet"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// LoadConfig reads configs/wallet.yaml (or CONFIG_PATH) and applies WALLET_* environment overrides.
func LoadConfig() (*Config, error) {
	loaded, err := pkgconfig.Load(serviceName, defaults())
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := loaded.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite, DriverMongoDB:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Wallet.RewardRate < 0 || c.Wallet.RewardRate >= 1 {
		return fmt.Errorf("wallet.reward_rate must be in [0, 1), got %v", c.Wallet.RewardRate)
	}

	if c.Access.RequireToken && c.Access.TokenSecret == "" {
		return fmt.Errorf("access.require_token needs access.token_secret")
	}

	return nil
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"service.name":        serviceName,
		"service.environment": "development",
		"service.client_url":  "*",

		"server.http.host": "0.0.0.0",
		"server.http.port": 5000,
		"server.grpc.host": "0.0.0.0",
		"server.grpc.port": 0,

		"database.driver":             DriverSQLite,
		"database.dsn":                "",
		"database.host":               "localhost",
		"database.port":               5432,
		"database.name":               "shop_wallet",
		"database.user":               "",
		"database.password":           "",
		"database.sqlite_path":        "wallet.db",
		"database.max_open_conns":     10,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "30m",
		"database.conn_max_idle_time": "5m",
		"database.slow_threshold":     "200ms",

		"mongodb.uri":      "mongodb://localhost:27017",
		"mongodb.username": "",
		"mongodb.password": "",
		"mongodb.database": "shop-management",
		"mongodb.timeout":  "10s",

		"log.level":  "info",
		"log.format": "json",
		"log.output": "stdout",

		"access.password":      "",
		"access.token_secret":  "",
		"access.token_ttl":     "12h",
		"access.require_token": false,

		"wallet.reward_rate": 0.02,

		"redis.enabled":  false,
		"redis.addr":     "localhost:6379",
		"redis.username": "",
		"redis.password": "",
		"redis.db":       0,
		"redis.channel":  "wallet.events",
	}
}
