package catalog_test

import (
	"testing"

	"movies-api/internal/catalog"
	"movies-api/internal/domain/movies"
	"movies-api/internal/infra/moviestore"
	"movies-api/internal/testutil"

	"gorm.io/gorm"
)

// fixture is a small catalog shaped like the reference dataset.
func fixture() []movies.Movie {
	return []movies.Movie{
		{ID: 1, Title: "Inception", VoteAverage: testutil.Float(8.4), Status: testutil.Status(movies.StatusReleased),
			Genres: movies.List{"Action", "Science Fiction", "Adventure"}, Keywords: movies.List{"dream", "heist", "subconscious"}},
		{ID: 2, Title: "Interstellar", VoteAverage: testutil.Float(8.6), Status: testutil.Status(movies.StatusReleased),
			Genres: movies.List{"Adventure", "Drama", "Science Fiction"}, Keywords: movies.List{"space", "wormhole", "time travel"}},
		{ID: 3, Title: "The Dark Knight", VoteAverage: testutil.Float(8.5), Status: testutil.Status(movies.StatusReleased),
			Genres: movies.List{"Drama", "Action", "Crime", "Thriller"}, Keywords: movies.List{"dc comics", "joker", "vigilante"}},
		{ID: 4, Title: "Heat", VoteAverage: testutil.Float(7.9), Status: testutil.Status(movies.StatusReleased),
			Genres: movies.List{"Action", "Crime", "Drama", "Thriller"}, Keywords: movies.List{"heist", "bank robbery", "detective"}},
		{ID: 5, Title: "Paprika", VoteAverage: testutil.Float(7.9), Status: testutil.Status(movies.StatusReleased),
			Genres: movies.List{"Animation", "Science Fiction", "Thriller"}, Keywords: movies.List{"dream", "detective", "subconscious"}},
		{ID: 6, Title: "Upcoming Movie", Status: testutil.Status(movies.StatusNotReleased),
			Genres: movies.List{"Science Fiction"}, Keywords: movies.List{"dream"}},
		{ID: 7, Title: "Adult Film", VoteAverage: testutil.Float(5.0), Adult: true, Status: testutil.Status(movies.StatusReleased),
			Genres: movies.List{"Drama"}},
		{ID: 8, Title: "Tenet", VoteAverage: testutil.Float(7.2), Status: testutil.Status(movies.StatusReleased),
			Genres: movies.List{"Action", "Thriller", "Science Fiction"}, Keywords: movies.List{"time travel", "espionage"}},
		{ID: 9, Title: "100% Pure_Fun", VoteAverage: testutil.Float(6.0),
			Genres: movies.List{"Comedy"}},
		{ID: 10, Title: "Blank"},
	}
}

func newService(t *testing.T) (*catalog.Service, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	testutil.Seed(t, db, fixture()...)
	return newServiceOn(db), db
}

func newServiceOn(db *gorm.DB) *catalog.Service {
	store := moviestore.New(db, nil)
	return catalog.NewService(store, store, nil)
}

func ids(ms []movies.Movie) []int64 {
	out := make([]int64, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ID)
	}
	return out
}

func similarIDs(items []catalog.SimilarMovie) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.Movie.ID)
	}
	return out
}
