// Package sidecar generates metadata sidecar files for renamed movies.
//
// Media managers (Kodi, Jellyfin, Emby) read a movie.nfo file placed
// next to the video instead of re-scraping the title. Writing one at
// rename time preserves the language- and region-specific resolution
// this tool already did.
//
// # Usage
//
//	creator := sidecar.NewNFOCreator()
//	content := creator.CreateNFO(item)
//	ioutils.WriteFile(filepath.Join(destDir, "movie.nfo"), []byte(content))
package sidecar
