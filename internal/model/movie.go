package model

import "strings"

// Movie holds the catalog metadata for one film, as resolved from TMDB
// (or, in degraded mode, from the source filename alone).
//
// Example:
//
//	movie := &model.Movie{
//	    TMDBID:      27205,
//	    IMDBID:      "tt1375666",
//	    Title:       "Inception",
//	    ReleaseDate: "2010-07-15",
//	}
//	movie.Year() // "2010"
type Movie struct {
	// TMDBID is the TMDB movie identifier. Zero means unresolved.
	TMDBID int

	// IMDBID is the IMDb identifier including the "tt" prefix.
	// Empty when TMDB knows no IMDb id for the movie.
	IMDBID string

	// Title is the movie title localized to the configured language.
	Title string

	// OriginalTitle is the untranslated title.
	OriginalTitle string

	// ReleaseDate is the primary release date in YYYY-MM-DD form.
	// May be empty or a bare year for obscure entries.
	ReleaseDate string

	// CollectionID and CollectionName describe the collection (saga)
	// the movie belongs to. CollectionID zero means no collection.
	CollectionID   int
	CollectionName string

	// Language and Region record which locale the metadata was
	// resolved for, e.g. "es" / "ES".
	Language string
	Region   string

	// Overview is the localized plot summary, used for NFO sidecars.
	Overview string

	// PosterPath is the TMDB poster path ("/abc123.jpg"), not a full
	// URL. Empty when the movie has no poster.
	PosterPath string
}

// Year returns the release year, or an empty string when the release
// date is unknown.
func (m *Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// IMDBDigits returns the IMDb identifier without its "tt" prefix.
func (m *Movie) IMDBDigits() string {
	return strings.TrimPrefix(m.IMDBID, "tt")
}

// InCollection reports whether the movie belongs to a TMDB collection.
func (m *Movie) InCollection() bool {
	return m.CollectionID != 0
}
