package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hoanglamvn01/cosmetic_shop/internal/models"
	"github.com/hoanglamvn01/cosmetic_shop/internal/repo"
)

type CartService struct {
	Repo    *repo.CartRepo
	Catalog *repo.CatalogRepo
}

func (s *CartService) List(ctx context.Context, userID uint) ([]models.CartItem, error) {
	return s.Repo.List(ctx, userID)
}

func (s *CartService) Add(ctx context.Context, userID, productID, quantity uint) (*models.CartItem, error) {
	if productID == 0 {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}
	if quantity == 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}

	if _, err := s.Catalog.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return nil, err
	}

	return s.Repo.Add(ctx, userID, productID, quantity)
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID, quantity uint) error {
	if quantity == 0 {
		return fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}

	err := s.Repo.UpdateQuantity(ctx, userID, productID, quantity)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: cart item for product %d", ErrNotFound, productID)
	}
	return err
}

func (s *CartService) Remove(ctx context.Context, userID, productID uint) error {
	err := s.Repo.Remove(ctx, userID, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: cart item for product %d", ErrNotFound, productID)
	}
	return err
}

func (s *CartService) Clear(ctx context.Context, userID uint) error {
	return s.Repo.Clear(ctx, userID)
}
