package movies

import (
	"time"
)

type Status string

const (
	StatusReleased    Status = "released"
	StatusNotReleased Status = "not released"
)

// Movie is the canonical catalog record.
// List-valued columns are stored as comma-joined text (see List).
type Movie struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	Title       string   `gorm:"size:255;not null;index" json:"title"`
	VoteAverage *float64 `gorm:"index" json:"vote_average,omitempty"`
	VoteCount   *int64   `json:"vote_count,omitempty"`

	Status      *Status    `gorm:"size:50;index" json:"status,omitempty"`
	ReleaseDate *time.Time `gorm:"type:date" json:"release_date,omitempty"`
	Revenue     *int64     `json:"revenue,omitempty"`
	Runtime     *int64     `json:"runtime,omitempty"`

	Adult bool `gorm:"not null;default:false" json:"adult"`

	BackdropPath     *string  `gorm:"size:500" json:"backdrop_path,omitempty"`
	Budget           *int64   `json:"budget,omitempty"`
	Homepage         *string  `gorm:"size:500" json:"homepage,omitempty"`
	IMDbID           *string  `gorm:"column:imdb_id;size:50;index" json:"imdb_id,omitempty"`
	OriginalLanguage *string  `gorm:"size:10" json:"original_language,omitempty"`
	OriginalTitle    *string  `gorm:"size:255" json:"original_title,omitempty"`
	Overview         *string  `gorm:"type:text" json:"overview,omitempty"`
	Popularity       *float64 `json:"popularity,omitempty"`
	PosterPath       *string  `gorm:"size:500" json:"poster_path,omitempty"`
	Tagline          *string  `gorm:"size:500" json:"tagline,omitempty"`

	Genres              List `gorm:"type:text" json:"genres"`
	ProductionCompanies List `gorm:"type:text" json:"production_companies"`
	SpokenLanguages     List `gorm:"type:text" json:"spoken_languages"`
	Keywords            List `gorm:"type:text" json:"keywords"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SimilarityTokens is the union of genre and keyword tokens, without the
// movie's own title.
func (m *Movie) SimilarityTokens() TokenSet {
	tokens := ListTokens(m.Genres).Union(ListTokens(m.Keywords))
	delete(tokens, lowerTrim(m.Title))
	return tokens
}
