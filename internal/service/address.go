package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hoanglamvn01/cosmetic_shop/internal/models"
	"github.com/hoanglamvn01/cosmetic_shop/internal/repo"
	"github.com/hoanglamvn01/cosmetic_shop/internal/transport"
)

type AddressService struct {
	Repo *repo.AddressRepo
}

func (s *AddressService) List(ctx context.Context, userID uint) ([]models.Address, error) {
	return s.Repo.List(ctx, userID)
}

func (s *AddressService) Create(ctx context.Context, userID uint, req transport.AddressRequest) (*models.Address, error) {
	if err := validateAddress(&req); err != nil {
		return nil, err
	}

	addr := &models.Address{
		UserID:    userID,
		Recipient: req.Recipient,
		Phone:     req.Phone,
		Line:      req.Line,
		Ward:      req.Ward,
		District:  req.District,
		Province:  req.Province,
		IsDefault: req.IsDefault,
	}
	if err := s.Repo.Create(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *AddressService) Update(ctx context.Context, userID, id uint, req transport.AddressRequest) (*models.Address, error) {
	if err := validateAddress(&req); err != nil {
		return nil, err
	}

	addr, err := s.Repo.Get(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: address %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	addr.Recipient = req.Recipient
	addr.Phone = req.Phone
	addr.Line = req.Line
	addr.Ward = req.Ward
	addr.District = req.District
	addr.Province = req.Province
	addr.IsDefault = req.IsDefault

	if err := s.Repo.Update(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *AddressService) Delete(ctx context.Context, userID, id uint) error {
	err := s.Repo.Delete(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: address %d", ErrNotFound, id)
	}
	return err
}

func (s *AddressService) SetDefault(ctx context.Context, userID, id uint) error {
	err := s.Repo.SetDefault(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: address %d", ErrNotFound, id)
	}
	return err
}

func validateAddress(req *transport.AddressRequest) error {
	if req.Recipient == "" || req.Phone == "" {
		return fmt.Errorf("%w: recipient and phone required", ErrValidation)
	}
	if req.Line == "" || req.Province == "" {
		return fmt.Errorf("%w: address line and province required", ErrValidation)
	}
	return nil
}
