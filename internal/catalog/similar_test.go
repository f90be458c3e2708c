package catalog_test

import (
	"context"
	"testing"

	"movies-api/internal/catalog"
	"movies-api/internal/domain/movies"
	"movies-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarMovies_Ranking(t *testing.T) {
	svc, _ := newService(t)

	res, err := svc.SimilarMovies(context.Background(), "Inception", 0, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.Seed.ID)
	// rating desc; Heat and Paprika tie on 7.9 and Paprika shares more tokens;
	// the unrated movie ranks last.
	assert.Equal(t, []int64{2, 3, 5, 4, 8, 6}, similarIDs(res.Items))

	paprika := res.Items[2]
	assert.Equal(t, 3, paprika.Score)
	assert.Equal(t, []string{"science fiction"}, paprika.SharedGenres)
	assert.Equal(t, []string{"dream", "subconscious"}, paprika.SharedKeywords)
}

func TestSimilarMovies_NeverSeedNeverZeroShared(t *testing.T) {
	svc, _ := newService(t)

	res, err := svc.SimilarMovies(context.Background(), "inception", catalog.MaxSimilarLimit, 1)
	require.NoError(t, err)
	for _, it := range res.Items {
		assert.NotEqual(t, res.Seed.ID, it.Movie.ID)
		assert.Greater(t, it.Score, 0)
		assert.Equal(t, it.Score, len(it.SharedGenres)+len(it.SharedKeywords))
	}
}

func TestSimilarMovies_MonotonicInMinShared(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	prev := -1
	for minShared := 1; minShared <= 5; minShared++ {
		res, err := svc.SimilarMovies(ctx, "Inception", catalog.MaxSimilarLimit, minShared)
		require.NoError(t, err)
		if prev >= 0 {
			assert.LessOrEqual(t, len(res.Items), prev, "minShared=%d", minShared)
		}
		prev = len(res.Items)
	}

	res, err := svc.SimilarMovies(ctx, "Inception", 0, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, similarIDs(res.Items))
}

func TestSimilarMovies_Limit(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	res, err := svc.SimilarMovies(ctx, "Inception", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, similarIDs(res.Items))

	_, err = svc.SimilarMovies(ctx, "Inception", -1, 1)
	assert.ErrorIs(t, err, catalog.ErrInvalidInput)

	// non-positive minShared behaves as 1
	res, err = svc.SimilarMovies(ctx, "Inception", 0, 0)
	require.NoError(t, err)
	assert.Len(t, res.Items, 6)
}

func TestSimilarMovies_SeedEdgeCases(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.SimilarMovies(ctx, "No Such Movie", 0, 1)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = svc.SimilarMovies(ctx, "", 0, 1)
	assert.ErrorIs(t, err, catalog.ErrInvalidInput)

	res, err := svc.SimilarMovies(ctx, "Blank", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.Seed.ID)
	assert.Empty(t, res.Items)
}

func TestSimilarMovies_SeedTitleIsNotAToken(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.Seed(t, db,
		movies.Movie{ID: 1, Title: "Heist", Genres: movies.List{"Crime"}, Keywords: movies.List{"heist"}},
		movies.Movie{ID: 2, Title: "Robbery", Keywords: movies.List{"heist"}},
		movies.Movie{ID: 3, Title: "Caper", Genres: movies.List{"Crime"}},
	)
	svc := newServiceOn(db)

	res, err := svc.SimilarMovies(context.Background(), "heist", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, similarIDs(res.Items))
}

func TestSimilarMovies_DuplicateTitlesUseLowestID(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.Seed(t, db,
		movies.Movie{ID: 5, Title: "Twin", Genres: movies.List{"Drama"}},
		movies.Movie{ID: 9, Title: "twin", Genres: movies.List{"Drama"}},
	)
	svc := newServiceOn(db)

	res, err := svc.SimilarMovies(context.Background(), "TWIN", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Seed.ID)
	assert.Equal(t, []int64{9}, similarIDs(res.Items))
}
