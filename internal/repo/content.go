package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/hoanglamvn01/cosmetic_shop/internal/models"
)

type ContentRepo struct {
	DB *gorm.DB
}

func (r *ContentRepo) ListPublishedPosts(ctx context.Context, offset, limit int) (int64, []models.Post, error) {
	q := r.DB.WithContext(ctx).Model(&models.Post{}).Where("published = ?", true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var posts []models.Post
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return 0, nil, err
	}
	return total, posts, nil
}

func (r *ContentRepo) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND published = ?", id, true).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *ContentRepo) CreateContact(ctx context.Context, form *models.ContactForm) error {
	return r.DB.WithContext(ctx).Create(form).Error
}

func (r *ContentRepo) ListContacts(ctx context.Context, offset, limit int) (int64, []models.ContactForm, error) {
	q := r.DB.WithContext(ctx).Model(&models.ContactForm{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var forms []models.ContactForm
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&forms).Error; err != nil {
		return 0, nil, err
	}
	return total, forms, nil
}
