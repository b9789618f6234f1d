package repository

import (
	"context"
	"testing"
	"time"

	"print-shop/internal/data/entity"
	"print-shop/pkg/database"
	"print-shop/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo := NewRepository(database.NewMemoryStore(), zap.NewNop())
	require.NoError(t, repo.EnsureIndexes(context.Background()))
	return repo
}

func TestOrderRepositoryListsNewestFirstPerOwner(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	for i, owner := range []string{"u1", "u2", "u1", "u1"} {
		order := &entity.Order{
			Base:   entity.NewBase(start.Add(time.Duration(i) * time.Hour)),
			UserID: owner,
			Status: entity.OrderStatusConfirmation,
		}
		require.NoError(t, repo.Order.Create(ctx, order))
	}

	orders, err := repo.Order.FindAll(ctx, "u1", 2, 0)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.True(t, orders[0].CreatedAt.After(orders[1].CreatedAt))

	total, err := repo.Order.Count(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	all, err := repo.Order.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(4), all)
}

func TestOrderRepositoryUpdateStatusReportsNoChange(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	order := &entity.Order{Base: entity.NewBase(time.Now()), Status: entity.OrderStatusConfirmation}
	require.NoError(t, repo.Order.Create(ctx, order))

	res, err := repo.Order.UpdateStatus(ctx, order.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.True(t, res.Modified)

	res, err = repo.Order.UpdateStatus(ctx, order.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.False(t, res.Modified)

	res, err = repo.Order.UpdateStatus(ctx, "missing", entity.OrderStatusCancelled)
	require.NoError(t, err)
	assert.False(t, res.Matched)
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	repo := newTestRepository(t)
	err := repo.Order.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestUserEmailIsUnique(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := &entity.User{Base: entity.NewBase(time.Now()), Email: "sari@example.com"}
	second := &entity.User{Base: entity.NewBase(time.Now()), Email: "sari@example.com"}

	require.NoError(t, repo.User.Create(ctx, first))
	err := repo.User.Create(ctx, second)
	assert.True(t, IsDuplicate(err))

	found, err := repo.User.FindByEmail(ctx, "sari@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)

	missing, err := repo.User.FindByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
