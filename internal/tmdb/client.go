package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/movietools/movie-renamer/internal/http"
	"github.com/movietools/movie-renamer/internal/tmdb/dto"
)

const (
	apiBaseURL = "https://api.themoviedb.org/3"

	defaultMaxRetries = 3
	initialRetryDelay = time.Second

	// Applied when a 429 response carries no usable Retry-After.
	defaultRetryAfter = 2 * time.Second
)

// Client talks to the TMDB v3 API using a v4 read access token.
//
// Requests are retried with exponential backoff on transport errors,
// HTTP 429 and 5xx; other 4xx statuses fail immediately. A 429 with a
// Retry-After header additionally gates all requests from this client
// until the window passes, so concurrent workers do not pile onto a
// rate-limited API.
//
// Example usage:
//
//	client := tmdb.NewClient(apiKey)
//
//	results, err := client.SearchMovie(ctx, "Inception", "2010", "es")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	movie, err := client.MovieDetails(ctx, results[0].ID, "es")
type Client struct {
	http       *http.Client
	baseURL    string
	maxRetries int
	retryDelay time.Duration

	mu             sync.Mutex
	rateLimitUntil time.Time
}

// NewClient creates a TMDB client authenticated with the given v4
// read access token.
func NewClient(apiKey string) *Client {
	hc := http.NewClient()
	hc.SetBearerToken(apiKey)
	return &Client{
		http:       hc,
		baseURL:    apiBaseURL,
		maxRetries: defaultMaxRetries,
		retryDelay: initialRetryDelay,
	}
}

// SetMaxRetries overrides how many times a transient failure is
// retried. Negative values are ignored.
func (c *Client) SetMaxRetries(n int) {
	if n >= 0 {
		c.maxRetries = n
	}
}

// SearchMovie queries /search/movie for the given title, localized to
// lang. year, when non-empty, constrains results to a primary release
// year. An empty result slice with a nil error means TMDB found
// nothing for the query.
func (c *Client) SearchMovie(ctx context.Context, query, year, lang string) ([]dto.JSONSearchResult, error) {
	params := url.Values{
		"query":    {query},
		"language": {lang},
	}
	if year != "" {
		params.Set("primary_release_year", year)
	}

	var resp dto.JSONSearchResponse
	if err := c.getJSON(ctx, c.baseURL+"/search/movie", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// FindByIMDBID queries /find/{id} for a movie matching an IMDb id.
// Returns (nil, nil) when TMDB knows no movie for that id, so callers
// can fall back to a title search without special-casing the error.
func (c *Client) FindByIMDBID(ctx context.Context, imdbID, lang string) (*dto.JSONSearchResult, error) {
	params := url.Values{
		"external_source": {"imdb_id"},
		"language":        {lang},
	}

	var resp dto.JSONFindResponse
	if err := c.getJSON(ctx, c.baseURL+"/find/"+url.PathEscape(imdbID), params, &resp); err != nil {
		return nil, err
	}
	if len(resp.MovieResults) == 0 {
		return nil, nil
	}
	return &resp.MovieResults[0], nil
}

// MovieDetails fetches /movie/{id} with the external ids, translations
// and alternative titles appended in a single request.
func (c *Client) MovieDetails(ctx context.Context, movieID int, lang string) (*dto.JSONMovie, error) {
	params := url.Values{
		"append_to_response": {"external_ids,translations,alternative_titles"},
		"language":           {lang},
	}

	var movie dto.JSONMovie
	if err := c.getJSON(ctx, fmt.Sprintf("%s/movie/%d", c.baseURL, movieID), params, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// CollectionTranslations fetches the localized names of a collection.
func (c *Client) CollectionTranslations(ctx context.Context, collectionID int) ([]dto.JSONTranslation, error) {
	var resp dto.JSONTransList
	endpoint := c.baseURL + "/collection/" + strconv.Itoa(collectionID) + "/translations"
	if err := c.getJSON(ctx, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Translations, nil
}

// getJSON performs a GET with retry, backoff and rate-limit gating,
// decoding the response body into v.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, v any) error {
	body, err := c.getWithRetry(ctx, endpoint, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding TMDB response: %w", err)
	}
	return nil
}

func (c *Client) getWithRetry(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	attempts := c.maxRetries + 1
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		if err := c.waitForRateLimit(ctx); err != nil {
			return nil, err
		}

		body, err := c.http.Get(ctx, endpoint, params)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !http.IsRetryable(err) || attempt == attempts-1 {
			return nil, err
		}

		delay := c.retryDelay * (1 << attempt)
		var se *http.StatusError
		if errors.As(err, &se) && se.Code == 429 {
			retryAfter := se.RetryAfter
			if retryAfter <= 0 {
				retryAfter = defaultRetryAfter
			}
			if retryAfter > delay {
				delay = retryAfter
			}
			c.extendRateLimit(retryAfter)
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// waitForRateLimit blocks until any server-imposed rate-limit window
// has passed. The window is shared across goroutines using this
// client.
func (c *Client) waitForRateLimit(ctx context.Context) error {
	c.mu.Lock()
	wait := time.Until(c.rateLimitUntil)
	c.mu.Unlock()

	if wait <= 0 {
		return nil
	}
	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) extendRateLimit(d time.Duration) {
	until := time.Now().Add(d)
	c.mu.Lock()
	if until.After(c.rateLimitUntil) {
		c.rateLimitUntil = until
	}
	c.mu.Unlock()
}
