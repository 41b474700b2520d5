package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hoanglamvn01/cosmetic_shop/internal/models"
)

type AddressRepo struct {
	DB *gorm.DB
}

func (r *AddressRepo) List(ctx context.Context, userID uint) ([]models.Address, error) {
	var addrs []models.Address
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, id ASC").
		Find(&addrs).Error; err != nil {
		return nil, err
	}
	return addrs, nil
}

func (r *AddressRepo) Get(ctx context.Context, userID, id uint) (*models.Address, error) {
	var addr models.Address
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&addr).Error; err != nil {
		return nil, err
	}
	return &addr, nil
}

func (r *AddressRepo) Create(ctx context.Context, addr *models.Address) error {
	if !addr.IsDefault {
		return r.DB.WithContext(ctx).Create(addr).Error
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := unsetDefaults(tx, addr.UserID); err != nil {
			return err
		}
		return tx.Create(addr).Error
	})
}

func (r *AddressRepo) Update(ctx context.Context, addr *models.Address) error {
	if !addr.IsDefault {
		return r.DB.WithContext(ctx).Save(addr).Error
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := unsetDefaults(tx, addr.UserID); err != nil {
			return err
		}
		return tx.Save(addr).Error
	})
}

func (r *AddressRepo) Delete(ctx context.Context, userID, id uint) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Address{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetDefault makes the given address the user's only default. Unsetting the
// others and setting the new one run in the same transaction so the
// per-user singleton invariant holds.
func (r *AddressRepo) SetDefault(ctx context.Context, userID, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var addr models.Address
		err := tx.Where("id = ? AND user_id = ?", id, userID).First(&addr).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		if err != nil {
			return err
		}

		if err := unsetDefaults(tx, userID); err != nil {
			return err
		}

		return tx.Model(&models.Address{}).
			Where("id = ?", id).
			Update("is_default", true).Error
	})
}

func unsetDefaults(tx *gorm.DB, userID uint) error {
	return tx.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
