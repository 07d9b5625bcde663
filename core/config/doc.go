// Package config provides configuration management for the gallery
// manager.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided
// into subsections:
//   - Log: logging level and format
//   - Database: Gallery 2 MySQL connection details
//   - Storage: S3/MinIO credentials and bucket settings
//   - Export: source/output paths and naming for the static tree export
//   - Gallery: exported-tree loading and cache sizing
//   - Verify: integrity scan paths and report location
//   - Repair: listing/report/artifact paths and scoring weights
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Export.OutputPath)
package config
