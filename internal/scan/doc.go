// Package scan discovers video files and reads what it can from their
// names.
//
// Discover expands the command line's source inputs (directories, glob
// patterns, individual files) into a flat list of video files.
// ParseFilename then applies release-name heuristics to each file:
//
//	files, _ := scan.Discover([]string{"/downloads/incoming"}, nil)
//	for _, f := range files {
//	    g := scan.ParseFilename(f)
//	    // g.Title, g.Year, g.IMDBID, g.Source, g.Fallback
//	}
//
// The guesses feed the TMDB resolver: an embedded IMDb id short-circuits
// the search entirely, a parenthesized year narrows it, and the fallback
// title gives the search a second chance when the primary title is a
// translation.
package scan
