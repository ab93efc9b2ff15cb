package sidecar

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/movietools/movie-renamer/internal/model"
)

func testItem() *model.Item {
	return &model.Item{
		SourcePath: "/downloads/inception.mkv",
		Movie: &model.Movie{
			TMDBID:        27205,
			IMDBID:        "tt1375666",
			Title:         "Origen",
			OriginalTitle: "Inception",
			ReleaseDate:   "2010-07-15",
			Overview:      "Dom Cobb es un ladrón con una extraña habilidad.",
			Language:      "es",
		},
		Media: &model.MediaInfo{
			Width:      1920,
			Height:     1080,
			VideoCodec: "AVC",
			AudioCodec: "DTS",
		},
	}
}

func TestCreateNFO(t *testing.T) {
	content := NewNFOCreator().CreateNFO(testItem())

	if !strings.HasPrefix(content, xml.Header) {
		t.Error("NFO should start with the XML declaration")
	}
	for _, want := range []string{
		"<title>Origen</title>",
		"<originaltitle>Inception</originaltitle>",
		"<year>2010</year>",
		"<premiered>2010-07-15</premiered>",
		`<uniqueid type="tmdb">27205</uniqueid>`,
		`<uniqueid type="imdb" default="true">tt1375666</uniqueid>`,
		"<width>1920</width>",
		"<codec>avc</codec>",
		"<codec>dts</codec>",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("NFO missing %q:\n%s", want, content)
		}
	}
}

func TestCreateNFOIsWellFormed(t *testing.T) {
	content := NewNFOCreator().CreateNFO(testItem())

	var doc nfoMovie
	if err := xml.Unmarshal([]byte(content), &doc); err != nil {
		t.Fatalf("NFO does not parse: %v", err)
	}
	if doc.Title != "Origen" || len(doc.UniqueIDs) != 2 {
		t.Errorf("round-trip lost data: %+v", doc)
	}
}

func TestCreateNFOCollection(t *testing.T) {
	item := testItem()
	item.Movie.CollectionID = 230
	item.Movie.CollectionName = "El Padrino - Colección"

	content := NewNFOCreator().CreateNFO(item)
	if !strings.Contains(content, "<set>") {
		t.Fatalf("NFO missing set element:\n%s", content)
	}
	// The designator is stripped and the localized suffix applied.
	if !strings.Contains(content, "<name>El Padrino - Colección</name>") {
		t.Errorf("unexpected set name:\n%s", content)
	}
}

func TestCreateNFOMinimal(t *testing.T) {
	item := &model.Item{
		SourcePath: "/downloads/unknown.mkv",
		Movie:      &model.Movie{Title: "Unknown"},
	}

	content := NewNFOCreator().CreateNFO(item)
	for _, banned := range []string{"<originaltitle>", "<set>", "<fileinfo>", "<uniqueid", "<year>"} {
		if strings.Contains(content, banned) {
			t.Errorf("minimal NFO should omit %s:\n%s", banned, content)
		}
	}
	if !strings.Contains(content, "<title>Unknown</title>") {
		t.Errorf("minimal NFO missing title:\n%s", content)
	}
}

func TestHDRType(t *testing.T) {
	tests := []struct{ label, want string }{
		{"Dolby Vision", "dolbyvision"},
		{"HDR10", "hdr10"},
		{"HDR10+", "hdr10"},
		{"HLG", "hlg"},
		{"HDR", "hdr10"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := hdrType(tt.label); got != tt.want {
			t.Errorf("hdrType(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}
