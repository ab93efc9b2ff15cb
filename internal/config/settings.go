package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Action names accepted in settings and on the command line.
const (
	ActionMove = "move"
	ActionCopy = "copy"
	ActionTest = "test"
	ActionSkip = "skip"
)

// Settings holds all configuration options.
type Settings struct {
	// Source and destination
	SourcePaths []string `json:"source_paths"`
	OutputDir   string   `json:"output_dir"`

	// Destination layout: a template string or "preset:NAME".
	Template string `json:"template"`

	// TMDB settings
	APIKey   string `json:"api_key"`
	Language string `json:"language"`

	// Action is what to do with each file: move, copy, test or skip.
	Action string `json:"action"`

	// Workers is how many files are processed concurrently.
	Workers int `json:"workers"`

	// MaxRetries bounds retry attempts for transient TMDB failures.
	MaxRetries int `json:"max_retries"`

	// VideoExtensions overrides the extensions scanned for; empty
	// keeps the built-in list (.mkv, .mp4, .avi).
	VideoExtensions []string `json:"video_extensions"`

	// Probe settings
	FFProbePath string `json:"ffprobe_path"`

	// Sidecar settings. A poster size of 0 in both dimensions keeps
	// the catalog's original poster dimensions.
	SavePoster      bool `json:"save_poster"`
	PosterMaxWidth  int  `json:"poster_max_width"`
	PosterMaxHeight int  `json:"poster_max_height"`
	WriteNFO        bool `json:"write_nfo"`

	// Debug enables verbose per-request output.
	Debug bool `json:"debug"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		OutputDir: filepath.Join(homeDir, "Movies"),
		Template:  "preset:plex",

		Language: "es",

		Action:     ActionTest,
		Workers:    4,
		MaxRetries: 3,

		FFProbePath: "ffprobe",

		SavePoster:      false,
		PosterMaxWidth:  1000,
		PosterMaxHeight: 1500,
		WriteNFO:        false,
	}
}

// Load reads settings from a JSON file.
//
// A missing file is not an error: defaults are returned, so a first
// run works without any setup.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the settings for mistakes a run cannot recover
// from. It is called after flags are merged in, not at load time, so
// a partial settings file stays loadable.
func (s *Settings) Validate() error {
	switch s.Action {
	case ActionMove, ActionCopy, ActionTest, ActionSkip:
	default:
		return fmt.Errorf("invalid action %q (want move, copy, test or skip)", s.Action)
	}
	if len(s.SourcePaths) == 0 {
		return fmt.Errorf("no source paths configured")
	}
	if s.OutputDir == "" {
		return fmt.Errorf("no output directory configured")
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", s.Workers)
	}
	if s.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative, got %d", s.MaxRetries)
	}
	if s.APIKey == "" && s.Action != ActionTest {
		return fmt.Errorf("a TMDB API key is required for action %q", s.Action)
	}
	return nil
}

// DefaultPath returns the conventional settings location,
// ~/.config/movie-renamer/settings.json.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "settings.json"
	}
	return filepath.Join(homeDir, ".config", "movie-renamer", "settings.json")
}
