package tmdb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/movietools/movie-renamer/internal/model"
	"github.com/movietools/movie-renamer/internal/scan"
	"github.com/movietools/movie-renamer/internal/tmdb/dto"
)

// ErrNoResults is returned when TMDB has no match for any search
// candidate derived from a filename.
var ErrNoResults = errors.New("no TMDB results")

// Resolver turns filename guesses into catalog metadata.
//
// Resolution order:
//  1. If the filename embeds an IMDb id, TMDB's /find endpoint is
//     tried first; it is unambiguous where a title search is not.
//  2. Otherwise the parsed title (and the fallback title, when the
//     filename carried one) is searched, first constrained to the
//     parsed year, then without it.
//
// After the match, movie details are fetched and the display title and
// collection name are localized for the configured language and
// region. Collection translations are cached per resolver, since many
// files in a batch belong to the same saga.
//
// Example usage:
//
//	resolver := tmdb.NewResolver(client, "es", "ES")
//	movie, err := resolver.Resolve(ctx, scan.ParseFilename("Inception (2010).mkv"))
//	if errors.Is(err, tmdb.ErrNoResults) {
//	    // fall back to filename-only metadata
//	}
type Resolver struct {
	client *Client
	lang   string

	// region is the explicit user region; effectiveRegion includes
	// the inferred default when the user gave none.
	region          string
	effectiveRegion string

	collMu    sync.Mutex
	collNames map[int]string
}

// NewResolver creates a Resolver for the given language and region.
// An empty region is inferred from the language where possible.
func NewResolver(client *Client, lang, region string) *Resolver {
	effective := region
	if effective == "" {
		effective = DefaultRegion(lang)
	}
	return &Resolver{
		client:          client,
		lang:            lang,
		region:          region,
		effectiveRegion: effective,
		collNames:       make(map[int]string),
	}
}

// Resolve looks up the movie a filename guess describes.
//
// Returns ErrNoResults when no search candidate matches anything;
// other errors are transport or API failures.
func (r *Resolver) Resolve(ctx context.Context, guess scan.Guess) (*model.Movie, error) {
	movieID, err := r.findMovieID(ctx, guess)
	if err != nil {
		return nil, err
	}

	details, err := r.client.MovieDetails(ctx, movieID, r.lang)
	if err != nil {
		return nil, fmt.Errorf("fetching movie %d: %w", movieID, err)
	}

	r.applyPreferredTitle(details)
	movie := details.ToMovie(r.lang, r.region)
	if movie.InCollection() {
		if name := r.localizedCollectionName(ctx, movie.CollectionID); name != "" {
			movie.CollectionName = name
		}
	}
	return movie, nil
}

// findMovieID picks the TMDB id for a guess, trying the IMDb id first
// and falling back to title searches.
func (r *Resolver) findMovieID(ctx context.Context, guess scan.Guess) (int, error) {
	if guess.IMDBID != "" {
		match, err := r.client.FindByIMDBID(ctx, guess.IMDBID, r.lang)
		if err != nil {
			return 0, fmt.Errorf("finding %s: %w", guess.IMDBID, err)
		}
		if match != nil {
			return match.ID, nil
		}
		// An id TMDB does not know is not fatal: the title search
		// below may still succeed.
	}

	if guess.Title == "" {
		return 0, ErrNoResults
	}

	candidates := []string{guess.Title}
	if guess.Fallback != "" {
		candidates = append(candidates, guess.Fallback)
	}

	for _, candidate := range candidates {
		years := []string{""}
		if guess.Year != "" {
			years = []string{guess.Year, ""}
		}
		for _, year := range years {
			results, err := r.client.SearchMovie(ctx, candidate, year, r.lang)
			if err != nil {
				return 0, fmt.Errorf("searching %q: %w", candidate, err)
			}
			if len(results) > 0 {
				return results[0].ID, nil
			}
		}
	}

	return 0, fmt.Errorf("%w for %q (%s)", ErrNoResults, guess.Title, orNA(guess.Year))
}

// applyPreferredTitle rewrites the payload's title to the best
// localized candidate.
//
// TMDB can return an untranslated title even when the request asked
// for a language: the overview gets translated but the title does not,
// or the localized name lives in a country-specific alternative title.
// Selection is region-strict: with no region (explicit or inferred),
// no cross-country guessing happens, because es-MX is not a safe stand
// in for es-ES. English requests keep TMDB's title untouched.
func (r *Resolver) applyPreferredTitle(movie *dto.JSONMovie) {
	if r.lang == "en" {
		return
	}

	chosen := pickTitleFromTranslations(movie, r.lang, r.effectiveRegion)
	if chosen == "" {
		chosen = pickTitleFromAltTitles(movie, r.effectiveRegion)
	}

	// When no localized title exists for the requested region, keep
	// what TMDB returned rather than inventing one.
	if chosen != "" && chosen != strings.TrimSpace(movie.Title) {
		movie.Title = chosen
	}
}

// localizedCollectionName returns the collection name for the
// configured locale, or "" when no translation fits. Lookups and
// misses are cached; a failed request is cached as a miss so one
// flaky endpoint does not re-fire per file.
func (r *Resolver) localizedCollectionName(ctx context.Context, collectionID int) string {
	r.collMu.Lock()
	name, ok := r.collNames[collectionID]
	r.collMu.Unlock()
	if ok {
		return name
	}

	translations, err := r.client.CollectionTranslations(ctx, collectionID)
	chosen := ""
	if err == nil {
		chosen = pickCollectionName(translations, r.lang, r.effectiveRegion)
	}

	r.collMu.Lock()
	r.collNames[collectionID] = chosen
	r.collMu.Unlock()
	return chosen
}

// pickTitleFromTranslations selects a title from the translations
// appendix, preferring an exact language+region match. With no region
// available the selection refuses to guess across countries.
func pickTitleFromTranslations(movie *dto.JSONMovie, lang, region string) string {
	if movie.Translations == nil || region == "" {
		return ""
	}
	for _, tr := range movie.Translations.Translations {
		if tr.ISO639 != lang || tr.ISO3166 != region {
			continue
		}
		if title := strings.TrimSpace(tr.Data.Title); title != "" {
			return title
		}
	}
	return ""
}

// pickTitleFromAltTitles selects the first alternative title for the
// region. Alternative titles carry no language, only a country.
func pickTitleFromAltTitles(movie *dto.JSONMovie, region string) string {
	if movie.AltTitles == nil || region == "" {
		return ""
	}
	for _, alt := range movie.AltTitles.Titles {
		if alt.ISO3166 != region {
			continue
		}
		if title := strings.TrimSpace(alt.Title); title != "" {
			return title
		}
	}
	return ""
}

// pickCollectionName selects a collection name from its translations,
// requiring an exact language+region match.
func pickCollectionName(translations []dto.JSONTranslation, lang, region string) string {
	if region == "" {
		return ""
	}
	for _, tr := range translations {
		if tr.ISO639 != lang || tr.ISO3166 != region {
			continue
		}
		if name := tr.LocalizedName(); name != "" {
			return name
		}
	}
	return ""
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
