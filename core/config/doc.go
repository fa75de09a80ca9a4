// Package config provides configuration management for the catalog sync service.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, body limit)
//   - Database: ERP database connection (mysql or sqlite)
//   - Storage: MinIO credentials and the private/public attachment buckets
//   - Log: Logging level and format
//   - Platform: e-commerce shop URL, access token and API version
//   - Sync: enable switch, price list and warehouse used by the sync
//
// Every key is registered from the `default` struct tag, so each one can be
// overridden by an environment variable (PLATFORM_ACCESS_TOKEN -> platform.access_token).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.PriceList)
package config
