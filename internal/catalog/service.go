package catalog

import (
	"context"
	"fmt"
	"strings"

	"movies-api/internal/domain/movies"
	"movies-api/internal/logger"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100

	DefaultSimilarLimit = 10
	MaxSimilarLimit     = 50

	// MaxTitleMatches caps by-title lookups, which are not paginated.
	MaxTitleMatches = 100
)

// Service answers catalog queries against a Store. It keeps no state of its
// own and is safe for concurrent use.
type Service struct {
	store Store
	lists ListStore
	log   *logger.Logger
}

// NewService wires the catalog. lists may be nil when list operations are not needed.
func NewService(store Store, lists ListStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{store: store, lists: lists, log: log.With("service", "catalog")}
}

// Filters are the recognized options of ListMovies. Empty values impose no constraint.
type Filters struct {
	Title          string
	Genre          string
	Adult          *bool
	Status         string
	MinVoteAverage *float64
}

// MoviePage is one page of an ordered result set. Total counts every match.
type MoviePage struct {
	Items []movies.Movie
	Total int64
	Skip  int
	Limit int
}

func (f Filters) criteria() (Criteria, error) {
	c := Criteria{
		TitleContains: strings.TrimSpace(f.Title),
		Genre:         strings.TrimSpace(f.Genre),
		Adult:         f.Adult,
	}
	if raw := strings.TrimSpace(f.Status); raw != "" {
		st := movies.NormalizeStatus(raw)
		if st == nil {
			return Criteria{}, invalid("status", "must be %q or %q, got %q", movies.StatusReleased, movies.StatusNotReleased, raw)
		}
		c.Status = st
	}
	if f.MinVoteAverage != nil {
		if !movies.ValidRating(*f.MinVoteAverage) {
			return Criteria{}, invalid("min_vote_average", "must be between %g and %g", movies.MinRating, movies.MaxRating)
		}
		c.MinVoteAverage = f.MinVoteAverage
	}
	return c, nil
}

// pageFor validates an offset window. limit 0 means def; limits above max are clamped.
func pageFor(skip, limit, def, max int) (Page, error) {
	if skip < 0 {
		return Page{}, invalid("skip", "must be greater than or equal to 0")
	}
	if limit < 0 {
		return Page{}, invalid("limit", "must be greater than 0")
	}
	if limit == 0 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	return Page{Skip: skip, Limit: limit}, nil
}

// ListMovies returns the movies matching every supplied filter, ordered by id.
func (s *Service) ListMovies(ctx context.Context, f Filters, skip, limit int) (MoviePage, error) {
	page, err := pageFor(skip, limit, DefaultLimit, MaxLimit)
	if err != nil {
		return MoviePage{}, err
	}
	c, err := f.criteria()
	if err != nil {
		return MoviePage{}, err
	}
	return s.find(ctx, "list movies", c, OrderByID, page)
}

// MoviesByGenre lists one of the known genres.
func (s *Service) MoviesByGenre(ctx context.Context, genre string, skip, limit int) (MoviePage, error) {
	g, ok := movies.CanonicalGenre(genre)
	if !ok {
		return MoviePage{}, invalid("genre", "unknown genre %q", genre)
	}
	return s.ListMovies(ctx, Filters{Genre: g}, skip, limit)
}

// MoviesByRating returns movies whose vote_average lies within the supplied
// bounds (inclusive), best rated first.
func (s *Service) MoviesByRating(ctx context.Context, minRating, maxRating *float64, skip, limit int) (MoviePage, error) {
	if minRating == nil && maxRating == nil {
		return MoviePage{}, invalid("", "at least one of min_rating or max_rating must be provided")
	}
	if minRating != nil && !movies.ValidRating(*minRating) {
		return MoviePage{}, invalid("min_rating", "must be between %g and %g", movies.MinRating, movies.MaxRating)
	}
	if maxRating != nil && !movies.ValidRating(*maxRating) {
		return MoviePage{}, invalid("max_rating", "must be between %g and %g", movies.MinRating, movies.MaxRating)
	}
	if minRating != nil && maxRating != nil && *minRating > *maxRating {
		return MoviePage{}, invalid("min_rating", "must be less than or equal to max_rating")
	}
	page, err := pageFor(skip, limit, DefaultLimit, MaxLimit)
	if err != nil {
		return MoviePage{}, err
	}
	c := Criteria{MinVoteAverage: minRating, MaxVoteAverage: maxRating}
	return s.find(ctx, "movies by rating", c, OrderByRating, page)
}

// MoviesByTitle matches titles exactly (case-insensitive) or by substring.
// No match is ErrNotFound.
func (s *Service) MoviesByTitle(ctx context.Context, title string, exact bool) ([]movies.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, invalid("title", "must not be empty")
	}
	c := Criteria{TitleContains: title}
	if exact {
		c = Criteria{TitleEquals: title}
	}
	res, err := s.find(ctx, "movies by title", c, OrderByID, Page{Limit: MaxTitleMatches})
	if err != nil {
		return nil, err
	}
	if len(res.Items) == 0 {
		return nil, fmt.Errorf("no movies found with title %q: %w", title, ErrNotFound)
	}
	return res.Items, nil
}

func (s *Service) find(ctx context.Context, op string, c Criteria, order Order, page Page) (MoviePage, error) {
	items, total, err := s.store.Find(ctx, c, order, page)
	if err != nil {
		return MoviePage{}, fmt.Errorf("%s: %w", op, err)
	}
	if items == nil {
		items = []movies.Movie{}
	}
	return MoviePage{Items: items, Total: total, Skip: page.Skip, Limit: page.Limit}, nil
}
