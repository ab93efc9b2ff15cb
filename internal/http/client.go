package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// StatusError is returned when a request completes with a non-2xx
// status. Callers can inspect the code to decide whether the request
// is worth retrying.
//
// Example:
//
//	var se *http.StatusError
//	if errors.As(err, &se) && se.Code == 429 {
//	    time.Sleep(se.RetryAfter)
//	}
type StatusError struct {
	// Code is the HTTP status code.
	Code int

	// Status is the full status line, e.g. "429 Too Many Requests".
	Status string

	// RetryAfter is the parsed Retry-After header, or zero when the
	// server did not send one.
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// Retryable reports whether the status indicates a transient condition
// (rate limiting or a server-side error) rather than a caller mistake.
func (e *StatusError) Retryable() bool {
	return e.Code == http.StatusTooManyRequests || (e.Code >= 500 && e.Code < 600)
}

// IsRetryable reports whether err represents a condition worth
// retrying: a transport failure (timeout, connection reset) or a
// retryable HTTP status. Other 4xx statuses are permanent.
func IsRetryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Retryable()
	}
	// Anything that never produced a status line is a transport
	// problem, except an explicit cancellation.
	return err != nil && !errors.Is(err, context.Canceled)
}

// Client wraps HTTP operations shared by the TMDB API layer and the
// poster downloader.
//
// Client provides:
//   - Configured User-Agent and optional Authorization headers
//   - Timeout handling
//   - JSON-friendly GET with query parameters
//   - File download with progress tracking
//
// Example usage:
//
//	client := NewClient()
//	client.SetBearerToken(apiKey)
//
//	body, err := client.Get(ctx, "https://api.themoviedb.org/3/movie/27205", nil)
//
//	// Download file with progress
//	err = client.DownloadFile(ctx, posterURL, "/path/to/poster.jpg", func(written, total int64) {
//	    percent := float64(written) / float64(total) * 100
//	    fmt.Printf("%.1f%%\n", percent)
//	})
type Client struct {
	httpClient *http.Client
	userAgent  string
	bearer     string
}

// NewClient creates a new HTTP client.
//
// The client is configured with:
//   - 30 second timeout
//   - "MovieRenamer" User-Agent header
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent: "MovieRenamer",
	}
}

// SetBearerToken configures an Authorization header sent with every
// request. TMDB v4 read tokens use this scheme.
func (c *Client) SetBearerToken(token string) {
	c.bearer = ""
	if token != "" {
		c.bearer = "Bearer " + token
	}
}

// ProgressWriter wraps a writer to track download progress.
//
// Use this to monitor large downloads by providing an OnUpdate callback
// that receives the current bytes written and total expected bytes.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	// Parameters are (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// Get performs a GET request and returns the response body as bytes.
//
// params, when non-nil, are encoded into the URL's query string. The
// request carries the configured User-Agent and Authorization headers.
//
// Returns a *StatusError if the response status is not 200 OK, so
// callers can distinguish rate limiting and server errors from
// permanent failures.
//
// Example:
//
//	params := url.Values{"query": {"Inception"}, "language": {"es"}}
//	data, err := client.Get(ctx, "https://api.themoviedb.org/3/search/movie", params)
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, rawURL, params)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	return io.ReadAll(resp.Body)
}

// DownloadFile downloads a file to the specified path with optional progress callback.
//
// The file is created (or truncated if it exists) and the content is streamed
// directly to disk, avoiding loading the entire file into memory.
//
// Parameters:
//   - ctx: Context for cancellation
//   - url: URL to download from
//   - destPath: Local file path to save to
//   - onProgress: Optional callback called with (bytesWritten, totalBytes)
//     Pass nil to disable progress tracking
//
// Example:
//
//	err := client.DownloadFile(ctx, posterURL, "/movies/Inception (2010)/poster.jpg", nil)
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error {
	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	file, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer file.Close()

	var writer io.Writer = file
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   file,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	_, err = io.Copy(writer, resp.Body)
	return err
}

// DownloadBytes downloads a file and returns the bytes in memory.
//
// Use this for small files like poster images that are resized before
// hitting disk. For large files, use DownloadFile to stream directly.
func (c *Client) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	return c.Get(ctx, url, nil)
}

func (c *Client) newRequest(ctx context.Context, method, rawURL string, params url.Values) (*http.Request, error) {
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		rawURL += sep + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if c.bearer != "" {
		req.Header.Set("Authorization", c.bearer)
	}
	return req, nil
}

func statusError(resp *http.Response) *StatusError {
	return &StatusError{
		Code:       resp.StatusCode,
		Status:     resp.Status,
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
	}
}

// parseRetryAfter reads a Retry-After header value in seconds.
// Fractional values round down; unparseable values are ignored.
func parseRetryAfter(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	secs, err := strconv.ParseFloat(value, 64)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
