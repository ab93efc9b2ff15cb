package model

import (
	"testing"

	"github.com/movietools/movie-renamer/internal/template"
)

func TestMovieYear(t *testing.T) {
	tests := []struct {
		name        string
		releaseDate string
		want        string
	}{
		{"full date", "2010-07-15", "2010"},
		{"bare year", "2010", "2010"},
		{"empty", "", ""},
		{"too short", "20", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Movie{ReleaseDate: tt.releaseDate}
			if got := m.Year(); got != tt.want {
				t.Errorf("Year() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIMDBDigits(t *testing.T) {
	m := &Movie{IMDBID: "tt1375666"}
	if got := m.IMDBDigits(); got != "1375666" {
		t.Errorf("IMDBDigits() = %q, want %q", got, "1375666")
	}
	empty := &Movie{}
	if got := empty.IMDBDigits(); got != "" {
		t.Errorf("IMDBDigits() on empty id = %q, want empty", got)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"slash", "Face/Off", "Face -Off"},
		{"colon", "Alien: Romulus", "Alien - Romulus"},
		{"question mark", "What If?", "What If -"},
		{"backslash", `a\b`, "a -b"},
		{"clean name", "Inception", "Inception"},
		{"surrounding spaces", "  Dune  ", "Dune"},
		{"empty becomes unknown", "", "Unknown"},
		{"only illegal chars", "???", "- - -"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeName(tt.in); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripCollectionDesignator(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dune Collection", "Dune"},
		{"Dune - Collection", "Dune"},
		{"El Padrino - la colección", "El Padrino"},
		{"Alien (Collection)", "Alien"},
		{"Die Hard Sammlung", "Die Hard"},
		{"Matrix Collezione", "Matrix"},
		{"Dune", "Dune"},
		{"Collection", "Collection"},
	}
	for _, tt := range tests {
		if got := StripCollectionDesignator(tt.in); got != tt.want {
			t.Errorf("StripCollectionDesignator(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDisplayCollectionName(t *testing.T) {
	m := &Movie{CollectionID: 86311, CollectionName: "Dune Collection", Language: "es"}
	if got := m.DisplayCollectionName(); got != "Dune - Colección" {
		t.Errorf("DisplayCollectionName() = %q, want %q", got, "Dune - Colección")
	}
	none := &Movie{}
	if got := none.DisplayCollectionName(); got != "" {
		t.Errorf("DisplayCollectionName() without collection = %q, want empty", got)
	}
}

func TestMediaInfoFPS(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{23.976, "24"},
		{25, "25"},
		{59.94, "60"},
		{0, ""},
	}
	for _, tt := range tests {
		info := &MediaInfo{FrameRate: tt.rate}
		if got := info.FPS(); got != tt.want {
			t.Errorf("FPS() for %v = %q, want %q", tt.rate, got, tt.want)
		}
	}
}

func TestMediaInfoResolution(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          string
	}{
		{"uhd", 3840, 2160, "2160p"},
		{"uhd cropped height", 3840, 1600, "2160p"},
		{"full hd", 1920, 1080, "1080p"},
		{"full hd cropped", 1920, 800, "1080p"},
		{"hd", 1280, 720, "720p"},
		{"pal sd", 720, 576, "576p"},
		{"unknown", 0, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := &MediaInfo{Width: tt.width, Height: tt.height}
			if got := info.Resolution(); got != tt.want {
				t.Errorf("Resolution() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestItemTemplateContext(t *testing.T) {
	item := &Item{
		SourcePath: "/downloads/Inception.2010.1080p.mkv",
		Movie: &Movie{
			TMDBID:      27205,
			IMDBID:      "tt1375666",
			Title:       "Inception",
			ReleaseDate: "2010-07-15",
			Language:    "en",
		},
		Media: &MediaInfo{
			Width:      1920,
			Height:     1080,
			Source:     "BluRay",
			VideoCodec: "x264",
			AudioCodec: "DTS",
			FrameRate:  23.976,
			BitDepth:   8,
		},
	}
	ctx := item.TemplateContext()

	want := map[string]string{
		template.FieldTitle:         "Inception",
		template.FieldLocalFilename: "Inception.2010.1080p",
		template.FieldYear:          "2010",
		template.FieldReleaseDate:   "2010-07-15",
		template.FieldTMDBID:        "27205",
		template.FieldIMDBID:        "tt1375666",
		template.FieldIMDB:          "1375666",
		template.FieldSource:        "BluRay",
		template.FieldVC:            "x264",
		template.FieldAC:            "DTS",
		template.FieldFPS:           "24",
		template.FieldBitDepth:      "8",
		template.FieldVF:            "1080p",
		template.FieldLang:          "en",
	}
	for field, wantValue := range want {
		got, ok := ctx.Lookup(field)
		if !ok {
			t.Errorf("field %s absent, want %q", field, wantValue)
			continue
		}
		if got != wantValue {
			t.Errorf("field %s = %q, want %q", field, got, wantValue)
		}
	}

	for _, absent := range []string{template.FieldCollection, template.FieldCollectionID, template.FieldHDR, template.FieldRegion} {
		if v, ok := ctx.Lookup(absent); ok {
			t.Errorf("field %s = %q, want absent", absent, v)
		}
	}
}

func TestItemTemplateContextSanitizesTitle(t *testing.T) {
	item := &Item{
		SourcePath: "/downloads/faceoff.mkv",
		Movie:      &Movie{Title: "Face/Off", ReleaseDate: "1997-06-27"},
	}
	got, ok := item.TemplateContext().Lookup(template.FieldTitle)
	if !ok || got != "Face -Off" {
		t.Errorf("TITLE = %q (present=%v), want %q", got, ok, "Face -Off")
	}
}
