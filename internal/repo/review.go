package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/hoanglamvn01/cosmetic_shop/internal/models"
)

type ReviewRepo struct {
	DB *gorm.DB
}

// RatingAggregate is the per-product review rollup joined into catalog
// listings.
type RatingAggregate struct {
	ProductID   uint    `json:"product_id"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int64   `json:"review_count"`
}

func (r *ReviewRepo) Create(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Create(review).Error
}

func (r *ReviewRepo) Get(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.DB.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepo) ExistsForUserProduct(ctx context.Context, userID, productID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Review{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepo) ListByProduct(ctx context.Context, productID uint, offset, limit int) (int64, []models.Review, error) {
	q := r.DB.WithContext(ctx).Model(&models.Review{}).Where("product_id = ?", productID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var reviews []models.Review
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&reviews).Error; err != nil {
		return 0, nil, err
	}
	return total, reviews, nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Review{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReviewRepo) Aggregates(ctx context.Context, productIDs []uint) (map[uint]RatingAggregate, error) {
	if len(productIDs) == 0 {
		return map[uint]RatingAggregate{}, nil
	}

	var rows []RatingAggregate
	err := r.DB.WithContext(ctx).Model(&models.Review{}).
		Select("product_id, AVG(rating) AS avg_rating, COUNT(id) AS review_count").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint]RatingAggregate, len(rows))
	for _, row := range rows {
		out[row.ProductID] = row
	}
	return out, nil
}
