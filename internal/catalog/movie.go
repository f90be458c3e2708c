package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movies-api/internal/domain/movies"
)

// MovieFields carries caller-supplied values for create and partial update.
// A nil field is "not supplied"; a supplied empty text clears the field.
type MovieFields struct {
	Title       *string
	VoteAverage *float64
	VoteCount   *int64
	Status      *string
	ReleaseDate *time.Time
	Revenue     *int64
	Runtime     *int64
	Adult       *bool
	Budget      *int64
	Popularity  *float64

	BackdropPath     *string
	Homepage         *string
	IMDbID           *string
	OriginalLanguage *string
	OriginalTitle    *string
	Overview         *string
	PosterPath       *string
	Tagline          *string

	Genres              *[]string
	ProductionCompanies *[]string
	SpokenLanguages     *[]string
	Keywords            *[]string
}

func (s *Service) GetMovie(ctx context.Context, id int64) (*movies.Movie, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("movie %d: %w", id, err)
	}
	return m, nil
}

// CreateMovie stores a new movie. id 0 lets the store assign one.
func (s *Service) CreateMovie(ctx context.Context, id int64, f MovieFields) (*movies.Movie, error) {
	if id < 0 {
		return nil, invalid("id", "must be a positive integer")
	}
	m := &movies.Movie{ID: id}
	if err := applyFields(m, f); err != nil {
		return nil, err
	}
	if m.Title == "" {
		return nil, invalid("title", "is required")
	}

	if id != 0 {
		_, err := s.store.Get(ctx, id)
		switch {
		case err == nil:
			return nil, fmt.Errorf("movie %d: %w", id, ErrConflict)
		case !errors.Is(err, ErrNotFound):
			return nil, fmt.Errorf("create movie: %w", err)
		}
	}

	if err := s.store.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}
	s.log.Info("movie created", "movie_id", m.ID)
	return m, nil
}

// UpdateMovie overwrites only the supplied fields.
func (s *Service) UpdateMovie(ctx context.Context, id int64, f MovieFields) (*movies.Movie, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("movie %d: %w", id, err)
	}
	if err := applyFields(m, f); err != nil {
		return nil, err
	}
	if m.Title == "" {
		return nil, invalid("title", "must not be empty")
	}
	if err := s.store.Replace(ctx, id, m); err != nil {
		return nil, fmt.Errorf("update movie %d: %w", id, err)
	}
	return m, nil
}

func (s *Service) DeleteMovie(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete movie %d: %w", id, err)
	}
	s.log.Info("movie deleted", "movie_id", id)
	return nil
}

func applyFields(m *movies.Movie, f MovieFields) error {
	if f.Title != nil {
		m.Title = strings.TrimSpace(*f.Title)
	}
	if f.VoteAverage != nil {
		if !movies.ValidRating(*f.VoteAverage) {
			return invalid("vote_average", "must be between %g and %g", movies.MinRating, movies.MaxRating)
		}
		m.VoteAverage = f.VoteAverage
	}
	if f.Status != nil {
		if strings.TrimSpace(*f.Status) == "" {
			m.Status = nil
		} else if st := movies.NormalizeStatus(*f.Status); st != nil {
			m.Status = st
		} else {
			return invalid("status", "must be %q or %q, got %q", movies.StatusReleased, movies.StatusNotReleased, *f.Status)
		}
	}
	if f.ReleaseDate != nil {
		m.ReleaseDate = f.ReleaseDate
	}
	if f.Adult != nil {
		m.Adult = *f.Adult
	}
	if f.Popularity != nil {
		if *f.Popularity < 0 {
			return invalid("popularity", "must not be negative")
		}
		m.Popularity = f.Popularity
	}

	ints := []struct {
		name string
		in   *int64
		dst  **int64
	}{
		{"vote_count", f.VoteCount, &m.VoteCount},
		{"revenue", f.Revenue, &m.Revenue},
		{"runtime", f.Runtime, &m.Runtime},
		{"budget", f.Budget, &m.Budget},
	}
	for _, n := range ints {
		if n.in == nil {
			continue
		}
		if *n.in < 0 {
			return invalid(n.name, "must not be negative")
		}
		*n.dst = n.in
	}

	texts := []struct {
		in  *string
		dst **string
	}{
		{f.BackdropPath, &m.BackdropPath},
		{f.Homepage, &m.Homepage},
		{f.IMDbID, &m.IMDbID},
		{f.OriginalLanguage, &m.OriginalLanguage},
		{f.OriginalTitle, &m.OriginalTitle},
		{f.Overview, &m.Overview},
		{f.PosterPath, &m.PosterPath},
		{f.Tagline, &m.Tagline},
	}
	for _, t := range texts {
		if t.in != nil {
			*t.dst = movies.NormalizeText(*t.in)
		}
	}

	lists := []struct {
		in  *[]string
		dst *movies.List
	}{
		{f.Genres, &m.Genres},
		{f.ProductionCompanies, &m.ProductionCompanies},
		{f.SpokenLanguages, &m.SpokenLanguages},
		{f.Keywords, &m.Keywords},
	}
	for _, l := range lists {
		if l.in != nil {
			*l.dst = movies.CleanList(*l.in)
		}
	}
	return nil
}
