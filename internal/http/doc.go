// Package http provides the HTTP client shared by the TMDB API layer
// and the poster downloader.
//
// The Client in this package handles:
//   - User-Agent and bearer Authorization headers
//   - Query-parameter encoding for API requests
//   - File downloads with progress tracking
//   - Timeout handling
//
// # Basic Usage
//
//	client := http.NewClient()
//	client.SetBearerToken(apiKey)
//
//	// Fetch an API payload
//	body, err := client.Get(ctx, "https://api.themoviedb.org/3/movie/27205", nil)
//
//	// Download a poster with progress callback
//	client.DownloadFile(ctx, posterURL, "/movies/poster.jpg", func(written, total int64) {
//	    fmt.Printf("%.1f%%\n", float64(written)/float64(total)*100)
//	})
//
// # Error Inspection
//
// Non-2xx responses surface as *StatusError, which carries the status
// code and any Retry-After header. IsRetryable classifies errors for
// retry loops:
//
//	if !http.IsRetryable(err) {
//	    return err // permanent, give up
//	}
package http
