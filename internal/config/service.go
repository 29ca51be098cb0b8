package config

import "time"

type ServiceConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	ClientURL   string `mapstructure:"client_url"`
}

// AccessConfig holds the shared password gate.
type AccessConfig struct {
	Password     string        `mapstructure:"password"`
	TokenSecret  string        `mapstructure:"token_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	RequireToken bool          `mapstructure:"require_token"`
}

type WalletConfig struct {
	// RewardRate is the share of a purchase amount credited to the wallet.
	RewardRate float64 `mapstructure:"reward_rate"`
}
