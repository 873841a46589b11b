// SPDX-License-Identifier: MPL-2.0

package config

type (
	// Config is the root configuration for grip.
	Config struct {
		// HTTP holds network transport settings.
		HTTP HTTPConfig `mapstructure:"http" toml:"http"`
		// UI holds user-interface preferences.
		UI UIConfig `mapstructure:"ui" toml:"ui"`
	}

	// HTTPConfig controls how grip talks to registries and version-control
	// hosts. A non-empty Proxy causes the proxy-aware transport to be
	// registered at startup.
	HTTPConfig struct {
		// Proxy is the proxy URL (e.g. "http://proxy.corp:3128").
		// Empty means direct connections.
		Proxy string `mapstructure:"proxy" toml:"proxy"`
		// TimeoutSeconds bounds a single fetch request. Zero means the
		// collaborator's default.
		TimeoutSeconds int `mapstructure:"timeout_seconds" toml:"timeout_seconds"`
	}

	// UIConfig holds terminal output preferences.
	UIConfig struct {
		// Verbose enables verbose output without passing --verbose.
		Verbose bool `mapstructure:"verbose" toml:"verbose"`
	}
)

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Proxy:          "",
			TimeoutSeconds: 30,
		},
		UI: UIConfig{
			Verbose: false,
		},
	}
}
