package catalog

import (
	"context"

	"movies-api/internal/domain/movies"
)

// Criteria is the predicate set handed to a Store. Zero values impose no
// constraint; all set fields compose with AND.
type Criteria struct {
	TitleContains string // case-insensitive substring
	TitleEquals   string // case-insensitive equality
	Genre         string // case-insensitive list membership

	Adult  *bool
	Status *movies.Status

	MinVoteAverage *float64 // inclusive
	MaxVoteAverage *float64 // inclusive
}

// RequiresRating reports whether records without vote_average are excluded.
func (c Criteria) RequiresRating() bool {
	return c.MinVoteAverage != nil || c.MaxVoteAverage != nil
}

type Order int

const (
	// OrderByID is primary key ascending.
	OrderByID Order = iota
	// OrderByRating is vote_average descending, then primary key ascending.
	OrderByRating
)

// Page is an already validated offset window.
type Page struct {
	Skip  int
	Limit int
}

// Store is the record-store collaborator consumed by the catalog and the
// importer. Every call is a single-record operation or a read.
type Store interface {
	Get(ctx context.Context, id int64) (*movies.Movie, error)
	Create(ctx context.Context, m *movies.Movie) error
	Replace(ctx context.Context, id int64, m *movies.Movie) error
	Delete(ctx context.Context, id int64) error

	// Find returns one page of matches plus the match count before paging.
	Find(ctx context.Context, c Criteria, order Order, page Page) ([]movies.Movie, int64, error)
	// Scan streams every match in primary key order. A non-nil error from fn stops the scan.
	Scan(ctx context.Context, c Criteria, fn func(m *movies.Movie) error) error
}

// ListStore persists curated lists.
type ListStore interface {
	// ResolveTitles returns, keyed by lower-cased title, the first movie (by id)
	// whose title matches case-insensitively. Unknown titles are omitted.
	ResolveTitles(ctx context.Context, titles []string) (map[string]movies.Movie, error)

	CreateList(ctx context.Context, l *movies.MovieList) error
	GetListByName(ctx context.Context, name string) (*movies.MovieList, error)
	AllLists(ctx context.Context) ([]movies.MovieList, error)
	// UpdateList saves the description and, when replaceItems is set,
	// replaces every stored item with l.Items.
	UpdateList(ctx context.Context, l *movies.MovieList, replaceItems bool) error
	DeleteList(ctx context.Context, id uint) error
}
