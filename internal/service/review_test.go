package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hoanglamvn01/cosmetic_shop/internal/models"
	"github.com/hoanglamvn01/cosmetic_shop/internal/repo"
	"github.com/hoanglamvn01/cosmetic_shop/internal/transport"
)

func newReviewEnv(t *testing.T) (*ReviewService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	svc := &ReviewService{
		Repo:    &repo.ReviewRepo{DB: db},
		Catalog: &repo.CatalogRepo{DB: db},
	}
	return svc, db
}

func TestReviewCreate_OnePerUserPerProduct(t *testing.T) {
	t.Parallel()

	svc, db := newReviewEnv(t)
	ctx := context.Background()

	product := models.Product{Name: "serum", Price: 200000}
	require.NoError(t, db.Create(&product).Error)

	review, err := svc.Create(ctx, 1, transport.CreateReviewRequest{
		ProductID: product.ID,
		Rating:    5,
		Comment:   "great",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 5, review.Rating)

	_, err = svc.Create(ctx, 1, transport.CreateReviewRequest{ProductID: product.ID, Rating: 3})
	require.ErrorIs(t, err, ErrConflict)

	// another user may still review
	_, err = svc.Create(ctx, 2, transport.CreateReviewRequest{ProductID: product.ID, Rating: 3})
	require.NoError(t, err)
}

func TestReviewCreate_RatingBounds(t *testing.T) {
	t.Parallel()

	svc, db := newReviewEnv(t)
	ctx := context.Background()

	product := models.Product{Name: "serum", Price: 200000}
	require.NoError(t, db.Create(&product).Error)

	_, err := svc.Create(ctx, 1, transport.CreateReviewRequest{ProductID: product.ID, Rating: 0})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, 1, transport.CreateReviewRequest{ProductID: product.ID, Rating: 6})
	require.ErrorIs(t, err, ErrValidation)
}

func TestReviewCreate_UnknownProduct(t *testing.T) {
	t.Parallel()

	svc, _ := newReviewEnv(t)

	_, err := svc.Create(context.Background(), 1, transport.CreateReviewRequest{ProductID: 99, Rating: 4})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReviewDelete_AuthorOrAdminOnly(t *testing.T) {
	t.Parallel()

	svc, db := newReviewEnv(t)
	ctx := context.Background()

	product := models.Product{Name: "serum", Price: 200000}
	require.NoError(t, db.Create(&product).Error)

	review, err := svc.Create(ctx, 1, transport.CreateReviewRequest{ProductID: product.ID, Rating: 4})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, 2, false, review.ID), ErrNotFound)
	require.NoError(t, svc.Delete(ctx, 2, true, review.ID))
}

func TestReviewAggregates_FeedProductViews(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	reviews := &repo.ReviewRepo{DB: db}
	catalog := &CatalogService{Repo: &repo.CatalogRepo{DB: db}, Reviews: reviews}
	ctx := context.Background()

	product := models.Product{Name: "serum", Price: 200000}
	require.NoError(t, db.Create(&product).Error)

	require.NoError(t, db.Create(&models.Review{UserID: 1, ProductID: product.ID, Rating: 5}).Error)
	require.NoError(t, db.Create(&models.Review{UserID: 2, ProductID: product.ID, Rating: 4}).Error)

	view, err := catalog.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, view.AvgRating, 0.001)
	assert.EqualValues(t, 2, view.ReviewCount)
}
