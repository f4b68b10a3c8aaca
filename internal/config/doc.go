// ABOUTME: Package documentation for the config package
// ABOUTME: Explains configuration loading, defaults and env var expansion

// Package config loads migchat-server configuration from YAML files.
//
// Values left unset fall back to Default(). Environment variables written
// as ${VAR_NAME} are expanded before parsing, so secrets and per-host paths
// can stay out of the file itself.
package config
