package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     Guess
	}{
		{
			filename: "Inception (2010).mkv",
			want:     Guess{Title: "Inception", Year: "2010"},
		},
		{
			filename: "Inception [1080p BluRay] (2010).mkv",
			want:     Guess{Title: "Inception", Year: "2010", Source: "BluRay"},
		},
		{
			filename: "Movie Title (Fallback Title) (Another Tag) (2022).mkv",
			want:     Guess{Title: "Movie Title", Year: "2022", Fallback: "Fallback Title"},
		},
		{
			// Dotted torrent names keep their noise: only parenthesized
			// years count.
			filename: "Movie.Title.2021.1080p.WEB-DL.DD5.1.x264-GROUP.mkv",
			want:     Guess{Title: "Movie Title 2021 1080p WEB-DL DD5 1 x264-GROUP", Source: "WEB-DL"},
		},
		{
			filename: "Movie Title (2021) (1080p WEB-DL x264) (GROUP).mkv",
			want:     Guess{Title: "Movie Title", Year: "2021", Source: "WEB-DL"},
		},
		{
			filename: "Movie Title (Director's Cut) (2021) (BluRay).mkv",
			want:     Guess{Title: "Movie Title", Year: "2021", Fallback: "Director's Cut", Source: "BluRay"},
		},
		{
			filename: "Movie Title (Remastered) (1972) [1080p].mkv",
			want:     Guess{Title: "Movie Title", Year: "1972", Fallback: "Remastered"},
		},
		{
			filename: "Movie Title (2021) [BACKUP].mkv",
			want:     Guess{Title: "Movie Title", Year: "2021"},
		},
		{
			// Implausible years are noise, not years, and all-digit
			// groups never become fallback titles.
			filename: "Movie Title (1492) (0042).mkv",
			want:     Guess{Title: "Movie Title"},
		},
		{
			filename: "Inception.2010.tt1375666.BDRemux.mkv",
			want:     Guess{Title: "Inception 2010 tt1375666 BDRemux", IMDBID: "tt1375666", Source: "BDRemux"},
		},
		{
			filename: "plain.mkv",
			want:     Guess{Title: "plain"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got := ParseFilename(tt.filename)
			if got != tt.want {
				t.Errorf("ParseFilename(%q)\n got  %+v\n want %+v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Movie.2021.UHD BDRemux.mkv", "UHD BDRemux"},
		{"Movie.2021.BDRemux.mkv", "BDRemux"},
		{"Movie.2021.BDRip.mkv", "BDRip"},
		{"Movie.2021.Blu-Ray.mkv", "BluRay"},
		{"Movie.2021.WEBRip.mkv", "WEBRip"},
		{"Movie.2021.WEBDL.mkv", "WEB-DL"},
		{"Movie.2021.MicroHD.mkv", "MicroHD"},
		{"Movie.2021.mkv", ""},
	}
	for _, tt := range tests {
		if got := parseSource(tt.filename); got != tt.want {
			t.Errorf("parseSource(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestIsVideo(t *testing.T) {
	for _, p := range []string{"a.mkv", "a.MP4", "dir/a.avi"} {
		if !IsVideo(p) {
			t.Errorf("IsVideo(%q) = false, want true", p)
		}
	}
	for _, p := range []string{"a.srt", "a.nfo", "a.mkv.part", "a"} {
		if IsVideo(p) {
			t.Errorf("IsVideo(%q) = true, want false", p)
		}
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	mustWrite := func(rel string) string {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	a := mustWrite("a.mkv")
	b := mustWrite("nested/b.mp4")
	mustWrite("nested/ignore.srt")
	c := mustWrite("single.avi")

	t.Run("directory walk", func(t *testing.T) {
		got, err := Discover([]string{dir}, nil)
		if err != nil {
			t.Fatalf("Discover: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("Discover found %d files, want 3: %v", len(got), got)
		}
	})

	t.Run("individual file", func(t *testing.T) {
		got, err := Discover([]string{c}, nil)
		if err != nil {
			t.Fatalf("Discover: %v", err)
		}
		if len(got) != 1 || got[0] != c {
			t.Errorf("Discover = %v, want [%s]", got, c)
		}
	})

	t.Run("glob pattern", func(t *testing.T) {
		got, err := Discover([]string{filepath.Join(dir, "*.mkv")}, nil)
		if err != nil {
			t.Fatalf("Discover: %v", err)
		}
		if len(got) != 1 || got[0] != a {
			t.Errorf("Discover = %v, want [%s]", got, a)
		}
	})

	t.Run("deduplicates", func(t *testing.T) {
		got, err := Discover([]string{dir, a, b}, nil)
		if err != nil {
			t.Fatalf("Discover: %v", err)
		}
		if len(got) != 3 {
			t.Errorf("Discover found %d files, want 3 after dedupe: %v", len(got), got)
		}
	})

	t.Run("custom extensions", func(t *testing.T) {
		got, err := Discover([]string{dir}, []string{"mkv", ".AVI"})
		if err != nil {
			t.Fatalf("Discover: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("Discover found %d files, want 2 (.mkv + .avi): %v", len(got), got)
		}
	})

	t.Run("missing input skipped", func(t *testing.T) {
		got, err := Discover([]string{filepath.Join(dir, "does-not-exist")}, nil)
		if err != nil {
			t.Fatalf("Discover: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("Discover = %v, want empty", got)
		}
	})
}
