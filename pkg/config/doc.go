// Package config handles configuration management for luapack.
// It supports loading configuration from multiple sources including
// embedded defaults, TOML files, environment variables, and command-line
// flags, merged in that order with koanf.
package config
