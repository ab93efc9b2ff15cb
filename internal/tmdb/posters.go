package tmdb

import "strings"

const imageBaseURL = "https://image.tmdb.org/t/p/"

// PosterURL builds the full image URL for a TMDB poster path.
// size is a TMDB image size like "w500" or "original"; an empty size
// means "original". Returns "" for an empty path.
//
// Example:
//
//	tmdb.PosterURL("/oYuLEt3zVCKq57qu2F8dT7NIa6f.jpg", "w500")
//	// "https://image.tmdb.org/t/p/w500/oYuLEt3zVCKq57qu2F8dT7NIa6f.jpg"
func PosterURL(path, size string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = "original"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return imageBaseURL + size + path
}
