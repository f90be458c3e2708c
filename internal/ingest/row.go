package ingest

import (
	"errors"
	"fmt"
	"strings"

	"movies-api/internal/domain/movies"
)

var (
	ErrInvalidID    = errors.New("missing or invalid id")
	ErrMissingTitle = errors.New("missing title")
)

// normalizeRow maps a raw row onto a Movie. Unusable optional values become
// absent; only id and title can reject the row.
func normalizeRow(r Row) (*movies.Movie, error) {
	id := movies.NormalizeInt(r.Get("id"))
	if id == nil {
		return nil, ErrInvalidID
	}
	if *id <= 0 {
		return nil, fmt.Errorf("%w: %d is not positive", ErrInvalidID, *id)
	}
	title := strings.TrimSpace(r.Get("title"))
	if title == "" {
		return nil, ErrMissingTitle
	}

	return &movies.Movie{
		ID:          *id,
		Title:       title,
		VoteAverage: movies.Rating(movies.NormalizeDecimal(r.Get("vote_average"))),
		VoteCount:   movies.NonNegativeInt(movies.NormalizeInt(r.Get("vote_count"))),
		Status:      movies.NormalizeStatus(r.Get("status")),
		ReleaseDate: movies.NormalizeDate(r.Get("release_date")),
		Revenue:     movies.NonNegativeInt(movies.NormalizeInt(r.Get("revenue"))),
		Runtime:     movies.NonNegativeInt(movies.NormalizeInt(r.Get("runtime"))),
		Adult:       movies.NormalizeBoolean(r.Get("adult")),
		Budget:      movies.NonNegativeInt(movies.NormalizeInt(r.Get("budget"))),
		Popularity:  movies.NonNegativeDecimal(movies.NormalizeDecimal(r.Get("popularity"))),

		BackdropPath:     movies.NormalizeText(r.Get("backdrop_path")),
		Homepage:         movies.NormalizeText(r.Get("homepage")),
		IMDbID:           movies.NormalizeText(r.Get("imdb_id")),
		OriginalLanguage: movies.NormalizeText(r.Get("original_language")),
		OriginalTitle:    movies.NormalizeText(r.Get("original_title")),
		Overview:         movies.NormalizeText(r.Get("overview")),
		PosterPath:       movies.NormalizeText(r.Get("poster_path")),
		Tagline:          movies.NormalizeText(r.Get("tagline")),

		Genres:              movies.NormalizeDelimitedList(r.Get("genres"), movies.ListDelimiter),
		ProductionCompanies: movies.NormalizeDelimitedList(r.Get("production_companies"), movies.ListDelimiter),
		SpokenLanguages:     movies.NormalizeDelimitedList(r.Get("spoken_languages"), movies.ListDelimiter),
		Keywords:            movies.NormalizeDelimitedList(r.Get("keywords"), movies.ListDelimiter),
	}, nil
}
