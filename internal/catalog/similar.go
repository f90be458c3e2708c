package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"movies-api/internal/domain/movies"
	"movies-api/internal/metrics"
)

// SimilarMovie is a candidate that shares genre/keyword tokens with the seed.
type SimilarMovie struct {
	Movie          movies.Movie
	SharedGenres   []string
	SharedKeywords []string
	Score          int // number of distinct shared tokens
}

type SimilarResult struct {
	Seed  movies.Movie
	Items []SimilarMovie
}

// SimilarMovies finds movies sharing at least minSharedTokens genre/keyword
// tokens with the movie titled seedTitle. Results are ranked by rating first
// and shared-token count second: the best movies that are also similar.
func (s *Service) SimilarMovies(ctx context.Context, seedTitle string, limit, minSharedTokens int) (SimilarResult, error) {
	seedTitle = strings.TrimSpace(seedTitle)
	if seedTitle == "" {
		return SimilarResult{}, invalid("title", "must not be empty")
	}
	page, err := pageFor(0, limit, DefaultSimilarLimit, MaxSimilarLimit)
	if err != nil {
		return SimilarResult{}, err
	}
	if minSharedTokens <= 0 {
		minSharedTokens = 1
	}

	seeds, _, err := s.store.Find(ctx, Criteria{TitleEquals: seedTitle}, OrderByID, Page{Limit: 1})
	if err != nil {
		return SimilarResult{}, fmt.Errorf("similar movies: %w", err)
	}
	if len(seeds) == 0 {
		return SimilarResult{}, fmt.Errorf("movie with title %q: %w", seedTitle, ErrNotFound)
	}
	seed := seeds[0]

	out := SimilarResult{Seed: seed, Items: []SimilarMovie{}}
	seedTokens := seed.SimilarityTokens()
	if seedTokens.Len() == 0 {
		return out, nil
	}

	top := newTopK(page.Limit)
	scanned := 0
	err = s.store.Scan(ctx, Criteria{}, func(m *movies.Movie) error {
		scanned++
		if m.ID == seed.ID {
			return nil
		}
		shared := seedTokens.Intersect(m.SimilarityTokens())
		if shared.Len() == 0 || shared.Len() < minSharedTokens {
			return nil
		}
		top.offer(SimilarMovie{
			Movie:          *m,
			SharedGenres:   shared.Intersect(movies.ListTokens(m.Genres)).Sorted(),
			SharedKeywords: shared.Intersect(movies.ListTokens(m.Keywords)).Sorted(),
			Score:          shared.Len(),
		})
		return nil
	})
	if err != nil {
		return SimilarResult{}, fmt.Errorf("similar movies: %w", err)
	}

	metrics.SimilarCandidatesScanned.Add(float64(scanned))
	out.Items = top.items
	s.log.Debug("similar movies ranked",
		"seed_id", seed.ID,
		"seed_tokens", seedTokens.Len(),
		"scanned", scanned,
		"returned", len(out.Items),
	)
	return out, nil
}

// ranksBefore orders by vote_average desc (absent lowest), score desc, id asc.
func ranksBefore(a, b SimilarMovie) bool {
	ra, rb := ratingOrLowest(a.Movie), ratingOrLowest(b.Movie)
	if ra != rb {
		return ra > rb
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Movie.ID < b.Movie.ID
}

func ratingOrLowest(m movies.Movie) float64 {
	if m.VoteAverage == nil {
		return movies.MinRating - 1
	}
	return *m.VoteAverage
}

// topK keeps the best k candidates seen so far, best first.
type topK struct {
	k     int
	items []SimilarMovie
}

func newTopK(k int) *topK {
	return &topK{k: k, items: make([]SimilarMovie, 0, k)}
}

func (t *topK) offer(c SimilarMovie) {
	idx := sort.Search(len(t.items), func(i int) bool { return ranksBefore(c, t.items[i]) })
	if idx >= t.k {
		return
	}
	t.items = append(t.items, SimilarMovie{})
	copy(t.items[idx+1:], t.items[idx:])
	t.items[idx] = c
	if len(t.items) > t.k {
		t.items = t.items[:t.k]
	}
}
