package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hoanglamvn01/cosmetic_shop/internal/models"
	"github.com/hoanglamvn01/cosmetic_shop/internal/repo"
)

func newCartEnv(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	svc := &CartService{
		Repo:    &repo.CartRepo{DB: db},
		Catalog: &repo.CatalogRepo{DB: db},
	}
	return svc, db
}

func TestCartAdd_UnknownProduct(t *testing.T) {
	t.Parallel()

	svc, _ := newCartEnv(t)

	_, err := svc.Add(context.Background(), 1, 99, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCartAdd_AccumulatesQuantity(t *testing.T) {
	t.Parallel()

	svc, db := newCartEnv(t)
	ctx := context.Background()

	product := models.Product{Name: "serum", Price: 200000, StockQuantity: 10}
	require.NoError(t, db.Create(&product).Error)

	item, err := svc.Add(ctx, 1, product.ID, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 2, item.Quantity)

	item, err = svc.Add(ctx, 1, product.ID, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, item.Quantity)
}

func TestCartUpdateQuantity_Validation(t *testing.T) {
	t.Parallel()

	svc, db := newCartEnv(t)
	ctx := context.Background()

	product := models.Product{Name: "serum", Price: 200000, StockQuantity: 10}
	require.NoError(t, db.Create(&product).Error)

	_, err := svc.Add(ctx, 1, product.ID, 1)
	require.NoError(t, err)

	require.ErrorIs(t, svc.UpdateQuantity(ctx, 1, product.ID, 0), ErrValidation)
	require.NoError(t, svc.UpdateQuantity(ctx, 1, product.ID, 4))

	items, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, 4, items[0].Quantity)
}

func TestCartRemove_MissingItem(t *testing.T) {
	t.Parallel()

	svc, _ := newCartEnv(t)

	require.ErrorIs(t, svc.Remove(context.Background(), 1, 99), ErrNotFound)
}
