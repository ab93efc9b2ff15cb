// Package tmdb resolves movie metadata from TheMovieDB API.
//
// The package has two layers:
//
//   - Client wraps the raw v3 endpoints (search, find, movie details,
//     collection translations) with retry, backoff and shared
//     rate-limit gating.
//   - Resolver orchestrates a lookup for one file: IMDb-id find when
//     the filename embeds one, title search otherwise, then localized
//     title and collection-name selection.
//
// # Resolving a File
//
//	client := tmdb.NewClient(apiKey)
//	lang, region := tmdb.NormalizeLanguage("es-ES")
//	resolver := tmdb.NewResolver(client, lang, region)
//
//	guess := scan.ParseFilename("Inception (2010).mkv")
//	movie, err := resolver.Resolve(ctx, guess)
//
// # Localization
//
// TMDB separates language (ISO 639-1) and region (ISO 3166-1). A
// request for language=es can still return an untranslated title, so
// the Resolver inspects the translations and alternative_titles
// appendices for a region-exact candidate. Without a region, explicit
// or inferred, it keeps TMDB's title rather than guessing across
// countries.
//
// # Posters
//
// Movie payloads carry poster paths, not URLs. PosterURL builds the
// full image URL for a configured size:
//
//	url := tmdb.PosterURL(movie.PosterPath, "w500")
package tmdb
