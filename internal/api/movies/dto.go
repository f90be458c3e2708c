package movies

import (
	"encoding/json"
	"fmt"
	"strings"

	"movies-api/internal/catalog"
	"movies-api/internal/domain/movies"
)

const dateLayout = "2006-01-02"

// ---------- requests

// flexList accepts either a JSON array of strings or one comma separated string.
type flexList []string

func (f *flexList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*f = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("expected a string or an array of strings")
	}
	*f = strings.Split(s, movies.ListDelimiter)
	return nil
}

func (f *flexList) values() *[]string {
	if f == nil {
		return nil
	}
	out := []string(*f)
	return &out
}

type MovieRequest struct {
	Title       *string  `json:"title"`
	VoteAverage *float64 `json:"vote_average"`
	VoteCount   *int64   `json:"vote_count"`
	Status      *string  `json:"status"`
	ReleaseDate *string  `json:"release_date"`
	Revenue     *int64   `json:"revenue"`
	Runtime     *int64   `json:"runtime"`
	Adult       *bool    `json:"adult"`
	Budget      *int64   `json:"budget"`
	Popularity  *float64 `json:"popularity"`

	BackdropPath     *string `json:"backdrop_path"`
	Homepage         *string `json:"homepage"`
	IMDbID           *string `json:"imdb_id"`
	OriginalLanguage *string `json:"original_language"`
	OriginalTitle    *string `json:"original_title"`
	Overview         *string `json:"overview"`
	PosterPath       *string `json:"poster_path"`
	Tagline          *string `json:"tagline"`

	Genres              *flexList `json:"genres"`
	ProductionCompanies *flexList `json:"production_companies"`
	SpokenLanguages     *flexList `json:"spoken_languages"`
	Keywords            *flexList `json:"keywords"`
}

type CreateMovieRequest struct {
	ID *int64 `json:"id"`
	MovieRequest
}

// fields converts the request; a malformed release_date is a validation error.
func (r MovieRequest) fields() (catalog.MovieFields, error) {
	f := catalog.MovieFields{
		Title:       r.Title,
		VoteAverage: r.VoteAverage,
		VoteCount:   r.VoteCount,
		Status:      r.Status,
		Revenue:     r.Revenue,
		Runtime:     r.Runtime,
		Adult:       r.Adult,
		Budget:      r.Budget,
		Popularity:  r.Popularity,

		BackdropPath:     r.BackdropPath,
		Homepage:         r.Homepage,
		IMDbID:           r.IMDbID,
		OriginalLanguage: r.OriginalLanguage,
		OriginalTitle:    r.OriginalTitle,
		Overview:         r.Overview,
		PosterPath:       r.PosterPath,
		Tagline:          r.Tagline,

		Genres:              r.Genres.values(),
		ProductionCompanies: r.ProductionCompanies.values(),
		SpokenLanguages:     r.SpokenLanguages.values(),
		Keywords:            r.Keywords.values(),
	}
	if r.ReleaseDate != nil && strings.TrimSpace(*r.ReleaseDate) != "" {
		d := movies.NormalizeDate(*r.ReleaseDate)
		if d == nil {
			return catalog.MovieFields{}, &catalog.ValidationError{
				Field:  "release_date",
				Reason: fmt.Sprintf("must be formatted as %s, got %q", dateLayout, *r.ReleaseDate),
			}
		}
		f.ReleaseDate = d
	}
	return f, nil
}

// ---------- responses

type MovieDTO struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	VoteAverage *float64 `json:"vote_average"`
	VoteCount   *int64   `json:"vote_count"`
	Status      *string  `json:"status"`
	ReleaseDate *string  `json:"release_date"`
	Revenue     *int64   `json:"revenue"`
	Runtime     *int64   `json:"runtime"`
	Adult       bool     `json:"adult"`
	Budget      *int64   `json:"budget"`
	Popularity  *float64 `json:"popularity"`

	BackdropPath     *string `json:"backdrop_path"`
	Homepage         *string `json:"homepage"`
	IMDbID           *string `json:"imdb_id"`
	OriginalLanguage *string `json:"original_language"`
	OriginalTitle    *string `json:"original_title"`
	Overview         *string `json:"overview"`
	PosterPath       *string `json:"poster_path"`
	Tagline          *string `json:"tagline"`

	Genres              []string `json:"genres"`
	ProductionCompanies []string `json:"production_companies"`
	SpokenLanguages     []string `json:"spoken_languages"`
	Keywords            []string `json:"keywords"`
}

type MoviePageDTO struct {
	Items []MovieDTO `json:"items"`
	Total int64      `json:"total"`
	Skip  int        `json:"skip"`
	Limit int        `json:"limit"`
}

type SimilarMovieDTO struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	VoteAverage     *float64 `json:"vote_average"`
	SharedGenres    []string `json:"shared_genres"`
	SharedKeywords  []string `json:"shared_keywords"`
	SimilarityScore int      `json:"similarity_score"`
}

type SimilarMoviesDTO struct {
	MovieID        int64             `json:"movie_id"`
	ReferenceTitle string            `json:"reference_title"`
	Items          []SimilarMovieDTO `json:"items"`
}

func listOrEmpty(l movies.List) []string {
	if l == nil {
		return []string{}
	}
	return l
}

func ToMovieDTO(m movies.Movie) MovieDTO {
	out := MovieDTO{
		ID:          m.ID,
		Title:       m.Title,
		VoteAverage: m.VoteAverage,
		VoteCount:   m.VoteCount,
		Revenue:     m.Revenue,
		Runtime:     m.Runtime,
		Adult:       m.Adult,
		Budget:      m.Budget,
		Popularity:  m.Popularity,

		BackdropPath:     m.BackdropPath,
		Homepage:         m.Homepage,
		IMDbID:           m.IMDbID,
		OriginalLanguage: m.OriginalLanguage,
		OriginalTitle:    m.OriginalTitle,
		Overview:         m.Overview,
		PosterPath:       m.PosterPath,
		Tagline:          m.Tagline,

		Genres:              listOrEmpty(m.Genres),
		ProductionCompanies: listOrEmpty(m.ProductionCompanies),
		SpokenLanguages:     listOrEmpty(m.SpokenLanguages),
		Keywords:            listOrEmpty(m.Keywords),
	}
	if m.Status != nil {
		s := string(*m.Status)
		out.Status = &s
	}
	if m.ReleaseDate != nil {
		d := m.ReleaseDate.Format(dateLayout)
		out.ReleaseDate = &d
	}
	return out
}

func toMovieDTOs(in []movies.Movie) []MovieDTO {
	out := make([]MovieDTO, 0, len(in))
	for _, m := range in {
		out = append(out, ToMovieDTO(m))
	}
	return out
}

func toMoviePageDTO(p catalog.MoviePage) MoviePageDTO {
	return MoviePageDTO{
		Items: toMovieDTOs(p.Items),
		Total: p.Total,
		Skip:  p.Skip,
		Limit: p.Limit,
	}
}

func toSimilarDTO(r catalog.SimilarResult) SimilarMoviesDTO {
	out := SimilarMoviesDTO{
		MovieID:        r.Seed.ID,
		ReferenceTitle: r.Seed.Title,
		Items:          make([]SimilarMovieDTO, 0, len(r.Items)),
	}
	for _, s := range r.Items {
		out.Items = append(out.Items, SimilarMovieDTO{
			ID:              s.Movie.ID,
			Title:           s.Movie.Title,
			VoteAverage:     s.Movie.VoteAverage,
			SharedGenres:    s.SharedGenres,
			SharedKeywords:  s.SharedKeywords,
			SimilarityScore: s.Score,
		})
	}
	return out
}
