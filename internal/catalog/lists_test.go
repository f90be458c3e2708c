package catalog_test

import (
	"context"
	"testing"

	"movies-api/internal/catalog"
	"movies-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateList(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	l, err := svc.CreateList(ctx, " Favorites ", testutil.Str("  mind benders "),
		[]string{"interstellar", "INCEPTION", "Unknown Title", "Inception", ""})
	require.NoError(t, err)

	assert.Equal(t, "Favorites", l.Name)
	assert.Equal(t, "mind benders", *l.Description)
	assert.Equal(t, []int64{2, 1}, ids(l.Movies()))
	for i, it := range l.Items {
		assert.Equal(t, i+1, it.Position)
	}

	_, err = svc.CreateList(ctx, "favorites", nil, nil)
	assert.NoError(t, err, "names are case-sensitive")

	_, err = svc.CreateList(ctx, "Favorites", nil, nil)
	assert.ErrorIs(t, err, catalog.ErrConflict)

	_, err = svc.CreateList(ctx, "  ", nil, nil)
	assert.ErrorIs(t, err, catalog.ErrInvalidInput)
}

func TestAllLists(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateList(ctx, "b-side", nil, []string{"Heat"})
	require.NoError(t, err)
	_, err = svc.CreateList(ctx, "a-side", nil, []string{"Heat", "Tenet", "Paprika"})
	require.NoError(t, err)

	all, err := svc.AllLists(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a-side", all[0].Name)
	assert.Equal(t, 3, all[0].Size)
	assert.Equal(t, "b-side", all[1].Name)
	assert.Equal(t, 1, all[1].Size)
}

func TestUpdateList(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateList(ctx, "Watch", nil, []string{"Heat", "Tenet"})
	require.NoError(t, err)

	l, err := svc.UpdateList(ctx, "Watch", testutil.Str("weekend"), nil)
	require.NoError(t, err)
	assert.Equal(t, "weekend", *l.Description)
	assert.Equal(t, []int64{4, 8}, ids(l.Movies()))

	titles := []string{"Paprika", "heat"}
	l, err = svc.UpdateList(ctx, "Watch", nil, &titles)
	require.NoError(t, err)
	assert.Equal(t, "weekend", *l.Description)
	assert.Equal(t, []int64{5, 4}, ids(l.Movies()))

	_, err = svc.UpdateList(ctx, "Missing", nil, nil)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestDeleteList(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateList(ctx, "Temp", nil, []string{"Heat"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteList(ctx, "Temp"))
	_, err = svc.GetList(ctx, "Temp")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteList(ctx, "Temp"), catalog.ErrNotFound)

	// movies are untouched
	_, err = svc.GetMovie(ctx, 4)
	assert.NoError(t, err)
}

func TestDeleteMovie_RemovesListEntries(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateList(ctx, "Crime", nil, []string{"Heat", "The Dark Knight"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteMovie(ctx, 4))

	l, err := svc.GetList(ctx, "Crime")
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids(l.Movies()))
}
