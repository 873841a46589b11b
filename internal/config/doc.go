// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as
// the file format.
//
// Configuration is loaded from ~/.config/grip/config.toml (or the XDG
// equivalent on Linux, ~/Library/Application Support/grip/config.toml on
// macOS, %APPDATA%\grip\config.toml on Windows), then overlaid with GRIP_*
// environment variables. The package provides type-safe access to HTTP proxy
// settings and UI preferences.
package config
