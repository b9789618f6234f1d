package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func seedNotes(t *testing.T, c Collection) {
	t.Helper()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	notes := []note{
		{ID: "a", Owner: "sari", Body: "first", CreatedAt: base},
		{ID: "b", Owner: "budi", Body: "second", CreatedAt: base.Add(time.Minute)},
		{ID: "c", Owner: "sari", Body: "third", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "d", Owner: "sari", Body: "tie", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, n := range notes {
		require.NoError(t, c.Insert(context.Background(), n.ID, n))
	}
}

func TestMemoryCollectionFindByID(t *testing.T) {
	c := NewMemoryStore().Collection("notes")
	seedNotes(t, c)

	var got note
	require.NoError(t, c.FindByID(context.Background(), "b", &got))
	assert.Equal(t, "second", got.Body)

	err := c.FindByID(context.Background(), "zzz", &got)
	assert.True(t, errors.Is(err, ErrNoDocument))
}

func TestMemoryCollectionFindSortsNewestFirst(t *testing.T) {
	c := NewMemoryStore().Collection("notes")
	seedNotes(t, c)

	var all []note
	require.NoError(t, c.Find(context.Background(), nil, FindOptions{SortBy: "created_at", Desc: true}, &all))
	require.Len(t, all, 4)
	assert.Equal(t, []string{"d", "c", "b", "a"}, []string{all[0].ID, all[1].ID, all[2].ID, all[3].ID})

	var page []note
	require.NoError(t, c.Find(context.Background(), Filter{"owner": "sari"}, FindOptions{SortBy: "created_at", Desc: true, Skip: 1, Limit: 1}, &page))
	require.Len(t, page, 1)
	assert.Equal(t, "c", page[0].ID)

	var beyond []note
	require.NoError(t, c.Find(context.Background(), nil, FindOptions{Skip: 10, Limit: 5}, &beyond))
	assert.Empty(t, beyond)
}

func TestMemoryCollectionCount(t *testing.T) {
	c := NewMemoryStore().Collection("notes")
	seedNotes(t, c)

	n, err := c.Count(context.Background(), Filter{"owner": "sari"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = c.Count(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestMemoryCollectionUpdateReportsModified(t *testing.T) {
	c := NewMemoryStore().Collection("notes")
	seedNotes(t, c)
	ctx := context.Background()

	res, err := c.Update(ctx, "a", map[string]any{"body": "changed"})
	require.NoError(t, err)
	assert.Equal(t, UpdateResult{Matched: true, Modified: true}, res)

	res, err = c.Update(ctx, "a", map[string]any{"body": "changed"})
	require.NoError(t, err)
	assert.Equal(t, UpdateResult{Matched: true, Modified: false}, res)

	res, err = c.Update(ctx, "missing", map[string]any{"body": "x"})
	require.NoError(t, err)
	assert.Equal(t, UpdateResult{}, res)

	var got note
	require.NoError(t, c.FindByID(ctx, "a", &got))
	assert.Equal(t, "changed", got.Body)
	assert.Equal(t, "sari", got.Owner)
}

func TestMemoryCollectionDelete(t *testing.T) {
	c := NewMemoryStore().Collection("notes")
	seedNotes(t, c)

	deleted, err := c.Delete(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = c.Delete(context.Background(), "a")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemoryCollectionUnique(t *testing.T) {
	c := NewMemoryStore().Collection("users")
	ctx := context.Background()
	require.NoError(t, c.EnsureUnique(ctx, "owner"))

	require.NoError(t, c.Insert(ctx, "1", note{ID: "1", Owner: "sari"}))
	err := c.Insert(ctx, "2", note{ID: "2", Owner: "sari"})
	assert.True(t, errors.Is(err, ErrDuplicate))

	require.NoError(t, c.Insert(ctx, "3", note{ID: "3", Owner: "budi"}))
	_, err = c.Update(ctx, "3", map[string]any{"owner": "sari"})
	assert.True(t, errors.Is(err, ErrDuplicate))
}
