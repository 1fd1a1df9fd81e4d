// Package config provides configuration management for boardgame-sync.
//
// It utilizes Viper for loading configuration from environment variables and a
// .env file, with defaults declared on the struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - BGG: catalog API root, username, retry delay and cap, batch size
//   - Airtable: API key, base id and table names
//   - Sync: reset and dry-run switches, chunk size
//   - Log: logging level, format and optional rotating file
//   - Database: run history connection (sqlite or mysql)
//   - Storage: MinIO/S3 settings for payload snapshots
//
// Keys map to environment variables by upper-casing and replacing dots with
// underscores (bgg.retry_delay -> BGG_RETRY_DELAY). RESET is accepted for
// SYNC_RESET and BGG_USER for BGG_USERNAME. A values.json file holding
// AIRTABLE_API_KEY, AIRTABLE_BASE_ID and BGG_USER is read when present; the
// environment takes precedence over it.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.BGG.Username)
package config
