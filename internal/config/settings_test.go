package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Action != ActionTest {
		t.Errorf("default action = %q, want %q", s.Action, ActionTest)
	}
	if s.Workers < 1 {
		t.Errorf("default workers = %d", s.Workers)
	}
	if s.Template == "" {
		t.Error("default template is empty")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Action != ActionTest {
		t.Errorf("action = %q, want default", s.Action)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"action":"copy","language":"it"}`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Action != ActionCopy || s.Language != "it" {
		t.Errorf("overrides not applied: %+v", s)
	}
	if s.Workers != DefaultSettings().Workers {
		t.Errorf("unset field lost its default: workers = %d", s.Workers)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	os.WriteFile(path, []byte("{nope"), 0644)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	s := DefaultSettings()
	s.OutputDir = "/mnt/media/movies"
	s.SourcePaths = []string{"/downloads"}
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.OutputDir != "/mnt/media/movies" || len(loaded.SourcePaths) != 1 {
		t.Errorf("reloaded settings differ: %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Settings {
		s := DefaultSettings()
		s.SourcePaths = []string{"/downloads"}
		return s
	}

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"valid test run", func(s *Settings) {}, false},
		{"bad action", func(s *Settings) { s.Action = "delete" }, true},
		{"no sources", func(s *Settings) { s.SourcePaths = nil }, true},
		{"no output dir", func(s *Settings) { s.OutputDir = "" }, true},
		{"zero workers", func(s *Settings) { s.Workers = 0 }, true},
		{"negative retries", func(s *Settings) { s.MaxRetries = -1 }, true},
		{"move without api key", func(s *Settings) { s.Action = ActionMove }, true},
		{"move with api key", func(s *Settings) { s.Action = ActionMove; s.APIKey = "k" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
