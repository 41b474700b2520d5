package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/hoanglamvn01/cosmetic_shop/internal/models"
)

type DiscountRepo struct {
	DB *gorm.DB
}

func (r *DiscountRepo) GetByCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	var dc models.DiscountCode
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&dc).Error; err != nil {
		return nil, err
	}
	return &dc, nil
}

func (r *DiscountRepo) Create(ctx context.Context, dc *models.DiscountCode) error {
	return r.DB.WithContext(ctx).Create(dc).Error
}

func (r *DiscountRepo) List(ctx context.Context) ([]models.DiscountCode, error) {
	var codes []models.DiscountCode
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *DiscountRepo) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.DiscountCode{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
