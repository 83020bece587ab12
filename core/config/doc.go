// Package config provides configuration management for kv-storage.
//
// It utilizes Viper for loading configuration from environment variables,
// with an optional .env file loaded first through godotenv.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Client: API key, base URL and timeout of the KV Storage client
//   - Server: emulator port, accepted API keys and storage backend
//   - Database: SQL connection details for the emulator's sql backend
//   - Storage: S3/MinIO credentials and bucket for namespace backups
//   - Log: Logging level and format
//
// Defaults come from the `default` struct tags of each section, and every key
// maps to an upper-case environment variable (client.base_url -> CLIENT_BASE_URL).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := kv.NewClient(cfg.Client)
package config
