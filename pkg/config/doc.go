// Package config provides configuration management for the hydra platform.
//
// Values are resolved in order: built-in defaults, the YAML config file,
// then environment variables. Each attribute remembers which source it
// came from so `hydractl configuration show` can report it.
//
// # Key Configuration Options
//
//   - HYDRA_CONFIG_PATH: directory holding hydra.yml
//   - HYDRA_SEASONAL_YEAR: placeholder year of seasonal timeseries
//   - HYDRA_LOG_LEVEL, HYDRA_LOG_FORMAT: logging
//   - HYDRA_TOKEN_SECRET: bearer token signing secret (environment only)
//   - DATABASE_URL: Database connection
//   - PORT: Server listen port
package config
