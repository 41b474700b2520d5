package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hoanglamvn01/cosmetic_shop/internal/models"
	"github.com/hoanglamvn01/cosmetic_shop/internal/repo"
	"github.com/hoanglamvn01/cosmetic_shop/internal/transport"
)

type ReviewService struct {
	Repo    *repo.ReviewRepo
	Catalog *repo.CatalogRepo
}

func (s *ReviewService) Create(ctx context.Context, userID uint, req transport.CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	if _, err := s.Catalog.GetProduct(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, req.ProductID)
		}
		return nil, err
	}

	exists, err := s.Repo.ExistsForUserProduct(ctx, userID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: product already reviewed", ErrConflict)
	}

	review := &models.Review{
		UserID:    userID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID uint, offset, limit int) (int64, []models.Review, error) {
	return s.Repo.ListByProduct(ctx, productID, offset, limit)
}

// Delete removes a review; only its author or an admin may do so.
func (s *ReviewService) Delete(ctx context.Context, userID uint, isAdmin bool, id uint) error {
	review, err := s.Repo.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: review %d", ErrNotFound, id)
	}
	if err != nil {
		return err
	}

	if review.UserID != userID && !isAdmin {
		return fmt.Errorf("%w: review %d", ErrNotFound, id)
	}
	return s.Repo.Delete(ctx, id)
}
