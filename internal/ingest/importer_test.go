package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"movies-api/internal/catalog"
	"movies-api/internal/domain/movies"
	"movies-api/internal/infra/moviestore"
	"movies-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "id,title,vote_average,vote_count,status,release_date,revenue,runtime,adult,backdrop_path,budget,homepage,imdb_id,original_language,original_title,overview,popularity,poster_path,tagline,genres,production_companies,spoken_languages,keywords\n"

func newImporter(t *testing.T) (*Importer, *moviestore.Store) {
	t.Helper()
	store := moviestore.New(testutil.NewDB(t), nil)
	return NewImporter(store, nil), store
}

func TestImportCSV_NormalizesRow(t *testing.T) {
	im, store := newImporter(t)
	ctx := context.Background()

	csv := header +
		`27205,Inception,8.364,34495,Released,2010-07-15,825532764,148,False,/bg.jpg,160000000,https://example.org,tt1375666,en,Inception,"A thief, who steals secrets.",83.952,/p.jpg,Your mind is the scene of the crime.,"Action, Science Fiction, Adventure",Legendary Pictures,"English, French","rescue, mission, dream"` + "\n"

	res, err := im.ImportCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 0, res.Skipped)
	assert.Empty(t, res.Errors)

	m, err := store.Get(ctx, 27205)
	require.NoError(t, err)
	assert.Equal(t, "Inception", m.Title)
	assert.Equal(t, 8.364, *m.VoteAverage)
	assert.Equal(t, int64(34495), *m.VoteCount)
	assert.Equal(t, movies.StatusReleased, *m.Status)
	assert.Equal(t, "2010-07-15", m.ReleaseDate.Format("2006-01-02"))
	assert.Equal(t, int64(148), *m.Runtime)
	assert.False(t, m.Adult)
	assert.Equal(t, "A thief, who steals secrets.", *m.Overview)
	assert.Equal(t, movies.List{"Action", "Science Fiction", "Adventure"}, m.Genres)
	assert.Equal(t, movies.List{"English", "French"}, m.SpokenLanguages)
	assert.Equal(t, movies.List{"rescue", "mission", "dream"}, m.Keywords)
}

func TestImportCSV_AdultAndStatusExample(t *testing.T) {
	im, store := newImporter(t)
	ctx := context.Background()

	res, err := im.ImportCSV(ctx, strings.NewReader("id,title,adult,status\n1,Example,TRUE,Released\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)

	m, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, m.Adult)
	require.NotNil(t, m.Status)
	assert.Equal(t, movies.StatusReleased, *m.Status)
}

func TestImportCSV_UpsertReplacesWholeRecord(t *testing.T) {
	im, store := newImporter(t)
	ctx := context.Background()

	first := "id,title,vote_average,tagline,genres\n5,Heat,7.9,A Los Angeles crime saga,\"Action,Crime\"\n"
	second := "id,title,vote_average,genres\n5,Heat (1995),8.1,Thriller\n"

	_, err := im.ImportCSV(ctx, strings.NewReader(first))
	require.NoError(t, err)
	res, err := im.ImportCSV(ctx, strings.NewReader(second))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Replaced)

	_, total, err := store.Find(ctx, catalog.Criteria{}, catalog.OrderByID, catalog.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	m, err := store.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Heat (1995)", m.Title)
	assert.Equal(t, 8.1, *m.VoteAverage)
	assert.Nil(t, m.Tagline, "replace is total, not a merge")
	assert.Equal(t, movies.List{"Thriller"}, m.Genres)
}

func TestImportCSV_BadRowsAreSkipped(t *testing.T) {
	im, store := newImporter(t)
	ctx := context.Background()

	csv := "id,title,vote_average,runtime,release_date,status\n" +
		"1,Good,7.0,120.0,15/07/2010,Post Production\n" +
		",No Id,5,,,\n" +
		"abc,Bad Id,5,,,\n" +
		"-4,Negative Id,5,,,\n" +
		"3,,5,,,\n" +
		"4,Out Of Range,11.5,-10,not-a-date,\n"

	res, err := im.ImportCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 4, res.Skipped)
	require.Len(t, res.Errors, 4)

	assert.Equal(t, 3, res.Errors[0].Line)
	assert.Equal(t, "", res.Errors[0].ID)
	assert.Equal(t, "abc", res.Errors[1].ID)
	assert.Contains(t, res.Errors[2].Reason, "not positive")
	assert.Equal(t, ErrMissingTitle.Error(), res.Errors[3].Reason)

	good, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(120), *good.Runtime)
	assert.Equal(t, "2010-07-15", good.ReleaseDate.Format("2006-01-02"))
	assert.Nil(t, good.Status)

	clipped, err := store.Get(ctx, 4)
	require.NoError(t, err)
	assert.Nil(t, clipped.VoteAverage)
	assert.Nil(t, clipped.Runtime)
	assert.Nil(t, clipped.ReleaseDate)
}

func TestImportCSV_ErrorListIsCapped(t *testing.T) {
	im, _ := newImporter(t)

	var b strings.Builder
	b.WriteString("id,title\n")
	for i := 0; i < MaxRowErrors+5; i++ {
		b.WriteString("x,bad\n")
	}
	res, err := im.ImportCSV(context.Background(), strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Equal(t, MaxRowErrors+5, res.Skipped)
	assert.Len(t, res.Errors, MaxRowErrors)
	assert.True(t, res.ErrorsTruncated)
}

func TestNewCSVSource_Header(t *testing.T) {
	_, err := NewCSVSource(strings.NewReader("title,genres\nX,Drama\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = NewCSVSource(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingColumn)

	src, err := NewCSVSource(strings.NewReader("\ufeff ID , Title \n1,Ok\n"))
	require.NoError(t, err)
	row, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "1", row.Get("id"))
	assert.Equal(t, "Ok", row.Get("title"))
	assert.Equal(t, 2, row.Line)

	_, err = src.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestCSVSource_RaggedRows(t *testing.T) {
	src, err := NewCSVSource(strings.NewReader("id,title,overview\n1,Short\n2,Long,text,extra\n"))
	require.NoError(t, err)

	row, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "", row.Get("overview"))

	row, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, "text", row.Get("overview"))
}

type sliceSource struct {
	rows []Row
	errs []error
	i    int
}

func (s *sliceSource) Next() (Row, error) {
	if s.i >= len(s.rows) {
		return Row{}, io.EOF
	}
	i := s.i
	s.i++
	return s.rows[i], s.errs[i]
}

func TestImportRows_MalformedRowIsARowError(t *testing.T) {
	im, _ := newImporter(t)
	src := &sliceSource{
		rows: []Row{{}, {Line: 3, Fields: map[string]string{"id": "1", "title": "Fine"}}},
		errs: []error{&MalformedRowError{Line: 2, Err: errors.New("bare quote")}, nil},
	}

	res, err := im.ImportRows(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Line)
}

func TestImportRows_SourceFailureStops(t *testing.T) {
	im, _ := newImporter(t)
	disk := errors.New("read: input/output error")
	src := &sliceSource{
		rows: []Row{{Line: 2, Fields: map[string]string{"id": "1", "title": "Fine"}}, {}},
		errs: []error{nil, disk},
	}

	res, err := im.ImportRows(context.Background(), src)
	assert.ErrorIs(t, err, disk)
	assert.Equal(t, 1, res.Imported)
}

func TestImportRows_ContextCancelled(t *testing.T) {
	im, _ := newImporter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows := make([]Row, 3)
	errs := make([]error, 3)
	for i := range rows {
		rows[i] = Row{Line: i + 2, Fields: map[string]string{"id": fmt.Sprint(i + 1), "title": "T"}}
	}
	res, err := im.ImportRows(ctx, &sliceSource{rows: rows, errs: errs})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Imported)
}

type failingStore struct {
	catalog.Store
	failID int64
}

func (f *failingStore) Create(ctx context.Context, m *movies.Movie) error {
	if m.ID == f.failID {
		return errors.New("disk full")
	}
	return f.Store.Create(ctx, m)
}

func TestImportRows_StoreFailureStops(t *testing.T) {
	store := moviestore.New(testutil.NewDB(t), nil)
	im := NewImporter(&failingStore{Store: store, failID: 2}, nil)

	res, err := im.ImportCSV(context.Background(), strings.NewReader("id,title\n1,A\n2,B\n3,C\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store row 3")
	assert.Equal(t, "disk full", errors.Unwrap(err).Error())
	assert.Equal(t, 1, res.Imported)
	assert.Empty(t, res.Errors)

	_, err = store.Get(context.Background(), 3)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

type unreachableStore struct {
	catalog.Store
	err error
}

func (u *unreachableStore) Get(context.Context, int64) (*movies.Movie, error) {
	return nil, u.err
}

func TestImportRows_StoreLookupFailurePropagates(t *testing.T) {
	refused := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	im := NewImporter(&unreachableStore{err: refused}, nil)

	res, err := im.ImportCSV(context.Background(), strings.NewReader("id,title\n1,A\n2,B\n3,C\n"))
	assert.ErrorIs(t, err, refused)
	assert.Equal(t, 0, res.Imported)
	assert.Equal(t, 0, res.Skipped)
}
