// Package config provides configuration loading and validation for harbor
// host processes.
//
// It uses Viper to load a config.yml found next to the binary's cmd
// directory or at the repo root, then applies environment overrides on
// top. A .env file is loaded with godotenv before the override pass so
// its entries participate.
//
// # Usage
//
//	var cfg config.HostConfig
//	err := config.LoadConfig("harbord", &cfg)
//
// Environment variables override file values using the APP_ prefix with
// underscore-separated paths (e.g., APP_DATABASE_URL).
package config
