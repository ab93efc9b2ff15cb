package dto

import (
	"strings"

	"github.com/movietools/movie-renamer/internal/model"
)

// JSONMovie represents the deserialized movie details payload from
// TMDB's /movie/{id} endpoint with append_to_response data attached.
type JSONMovie struct {
	ID            int             `json:"id"`
	Title         string          `json:"title"`
	OriginalTitle string          `json:"original_title"`
	ReleaseDate   string          `json:"release_date"`
	Overview      string          `json:"overview"`
	PosterPath    string          `json:"poster_path"`
	IMDBID        string          `json:"imdb_id"`
	Collection    *JSONCollection `json:"belongs_to_collection"`
	ExternalIDs   *JSONExternal   `json:"external_ids"`
	Translations  *JSONTransList  `json:"translations"`
	AltTitles     *JSONAltTitles  `json:"alternative_titles"`
}

// JSONCollection is the collection stub embedded in movie details.
type JSONCollection struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	PosterPath string `json:"poster_path"`
}

// JSONExternal holds the external_ids appendix.
type JSONExternal struct {
	IMDBID string `json:"imdb_id"`
}

// JSONTransList wraps the translations appendix. The collection
// translations endpoint returns the inner list directly, so both
// shapes funnel through JSONTranslation.
type JSONTransList struct {
	Translations []JSONTranslation `json:"translations"`
}

// JSONTranslation is one localized entry from a translations list.
type JSONTranslation struct {
	ISO639  string `json:"iso_639_1"`
	ISO3166 string `json:"iso_3166_1"`
	Name    string `json:"name"`
	Data    struct {
		Title string `json:"title"`
		Name  string `json:"name"`
	} `json:"data"`
}

// LocalizedName returns the best name this entry carries: the data
// payload's name, then its title, then the top-level name.
func (t *JSONTranslation) LocalizedName() string {
	for _, s := range []string{t.Data.Name, t.Data.Title, t.Name} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// JSONAltTitles wraps the alternative_titles appendix.
type JSONAltTitles struct {
	Titles []JSONAltTitle `json:"titles"`
}

// JSONAltTitle is one country-specific alternative title.
type JSONAltTitle struct {
	ISO3166 string `json:"iso_3166_1"`
	Title   string `json:"title"`
}

// ToMovie converts the payload into a model.Movie. The IMDb id always
// comes from TMDB's own data, never from the source filename: a
// filename id is only a lookup hint, and copying it into the output
// would launder a possibly wrong id into the result.
func (jm *JSONMovie) ToMovie(lang, region string) *model.Movie {
	movie := &model.Movie{
		TMDBID:        jm.ID,
		Title:         strings.TrimSpace(jm.Title),
		OriginalTitle: strings.TrimSpace(jm.OriginalTitle),
		ReleaseDate:   jm.ReleaseDate,
		Overview:      strings.TrimSpace(jm.Overview),
		PosterPath:    jm.PosterPath,
		Language:      lang,
		Region:        region,
	}

	movie.IMDBID = strings.TrimSpace(jm.IMDBID)
	if movie.IMDBID == "" && jm.ExternalIDs != nil {
		movie.IMDBID = strings.TrimSpace(jm.ExternalIDs.IMDBID)
	}

	if jm.Collection != nil && jm.Collection.ID != 0 {
		movie.CollectionID = jm.Collection.ID
		movie.CollectionName = strings.TrimSpace(jm.Collection.Name)
		if movie.PosterPath == "" {
			movie.PosterPath = jm.Collection.PosterPath
		}
	}

	return movie
}
