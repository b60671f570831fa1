// Package config loads server settings the way the example pack's
// sogserver loads its ServerMetadata: viper reads an optional config
// file, environment variables override it, and the caller gets back a
// plain struct instead of having to poke at viper directly.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds every runtime-tunable knob for the server binary. The
// simulation's tick rate and arena size are compile-time constants in
// package arena and are not configurable here.
type Config struct {
	ListenAddr  string
	LogLevel    string
	Environment string

	RateLimitPerSecond float64
	RateLimitBurst     int
	MaxWSConnsPerIP    int

	MetricsEnabled bool
}

// defaults registers a fallback value for every Config field; set
// before ReadInConfig so a missing/partial config file
// still produces a runnable configuration.
func defaults() {
	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("environment", "development")
	viper.SetDefault("rate_limit_per_second", 10.0)
	viper.SetDefault("rate_limit_burst", 20)
	viper.SetDefault("max_ws_conns_per_ip", 8)
	viper.SetDefault("metrics_enabled", true)
}

// Load reads configFile (without extension) from the working directory
// and "config/", then layers WARPBATTLE_-prefixed environment variables
// on top. A missing config file is not an error — the defaults above
// and any environment overrides are enough to run.
func Load(configFile string) (Config, error) {
	defaults()

	viper.SetEnvPrefix("WARPBATTLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(configFile)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, err
		}
	}

	return Config{
		ListenAddr:  viper.GetString("listen_addr"),
		LogLevel:    viper.GetString("log_level"),
		Environment: viper.GetString("environment"),

		RateLimitPerSecond: viper.GetFloat64("rate_limit_per_second"),
		RateLimitBurst:     viper.GetInt("rate_limit_burst"),
		MaxWSConnsPerIP:    viper.GetInt("max_ws_conns_per_ip"),

		MetricsEnabled: viper.GetBool("metrics_enabled"),
	}, nil
}
