// Package config provides configuration management for ticketd.
//
// This package handles loading and validating ticketd server configuration
// from environment variables and configuration files.
//
// # Configuration Sources
//
// Configuration is loaded from:
//
//   - Environment variables (primary)
//   - Configuration files (optional)
//
// # Key Configuration Options
//
//   - TICKETD_TOKEN_KEY: Token signing key
//   - TICKETD_LOG_LEVEL: Logging verbosity
//   - DATABASE_URL: Database connection
//   - TICKETD_PORT: Server listen port
package config
