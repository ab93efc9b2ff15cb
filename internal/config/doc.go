// Package config provides configuration management for movie-renamer.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Validation of merged flag/file settings
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Output to ~/Movies with the plex preset
//	// Action "test" (dry run), 4 workers
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    // file exists but is malformed
//	}
//	// A missing file silently yields defaults.
//
// # Saving Settings
//
//	settings.OutputDir = "/mnt/media/movies"
//	err := settings.Save(config.DefaultPath())
//
// # Validation
//
// Validate is meant to run after command-line flags are merged over
// the loaded file, so the file itself may be partial:
//
//	if err := settings.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
