// Package config provides configuration management for planeage.
//
// It utilizes Viper for loading configuration from environment variables and a
// local .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Log: Logging level and format
//   - Storage: S3/MinIO credentials for the dataset mirror
//   - Registry: local registry file paths, scan concurrency, cache sizing
//   - Flight: remote flight-data API endpoint, timeout, cache sizing
//   - Refresh: dataset archive URL, schedule, staleness threshold
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
