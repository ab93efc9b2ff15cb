package dto

// JSONSearchResponse is the payload from /search/movie.
type JSONSearchResponse struct {
	Results []JSONSearchResult `json:"results"`
}

// JSONSearchResult is one candidate from a search or find response.
// Only the fields the resolver needs are mapped.
type JSONSearchResult struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	ReleaseDate   string `json:"release_date"`
}

// JSONFindResponse is the payload from /find/{external_id}. The
// endpoint buckets matches by media type; only movies matter here.
type JSONFindResponse struct {
	MovieResults []JSONSearchResult `json:"movie_results"`
}
