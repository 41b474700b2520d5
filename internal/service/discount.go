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

type DiscountService struct {
	Repo *repo.DiscountRepo
	Now  func() time.Time
}

func NewDiscountService(r *repo.DiscountRepo) *DiscountService {
	return &DiscountService{Repo: r, Now: time.Now}
}

// Apply validates a code against its date window and computes the discount
// for the given order value. The final amount never drops below zero.
func (s *DiscountService) Apply(ctx context.Context, code string, orderValue float64) (*transport.ApplyDiscountResponse, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: code required", ErrValidation)
	}
	if orderValue < 0 {
		return nil, fmt.Errorf("%w: order value must be >= 0", ErrValidation)
	}

	dc, err := s.Repo.GetByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: discount code %q", ErrNotFound, code)
	}
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if now.Before(dc.StartDate) {
		return nil, fmt.Errorf("%w: discount code not yet active", ErrValidation)
	}
	if now.After(dc.EndDate) {
		return nil, fmt.Errorf("%w: discount code expired", ErrValidation)
	}

	amount := Discount(dc, orderValue)
	final := orderValue - amount
	if final < 0 {
		final = 0
	}

	return &transport.ApplyDiscountResponse{
		Code:           dc.Code,
		DiscountAmount: amount,
		FinalAmount:    final,
	}, nil
}

// Discount computes the raw discount amount: percentage when configured,
// fixed amount otherwise.
func Discount(dc *models.DiscountCode, orderValue float64) float64 {
	if dc.Percent > 0 {
		return orderValue * dc.Percent / 100
	}
	return dc.Amount
}

func (s *DiscountService) List(ctx context.Context) ([]models.DiscountCode, error) {
	return s.Repo.List(ctx)
}

func (s *DiscountService) Create(ctx context.Context, req transport.CreateDiscountRequest) (*models.DiscountCode, error) {
	if req.Code == "" {
		return nil, fmt.Errorf("%w: code required", ErrValidation)
	}
	if req.Percent < 0 || req.Percent > 100 {
		return nil, fmt.Errorf("%w: percent must be between 0 and 100", ErrValidation)
	}
	if req.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must be >= 0", ErrValidation)
	}

	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start_date", ErrValidation)
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end_date", ErrValidation)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end_date must be after start_date", ErrValidation)
	}

	dc := &models.DiscountCode{
		Code:      req.Code,
		Percent:   req.Percent,
		Amount:    req.Amount,
		StartDate: start,
		EndDate:   end,
	}
	if err := s.Repo.Create(ctx, dc); err != nil {
		return nil, fmt.Errorf("%w: discount code %q", ErrConflict, req.Code)
	}
	return dc, nil
}

func (s *DiscountService) Delete(ctx context.Context, id uint) error {
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: discount %d", ErrNotFound, id)
	}
	return err
}
