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

type ContentService struct {
	Repo *repo.ContentRepo
}

func (s *ContentService) ListPosts(ctx context.Context, offset, limit int) (int64, []models.Post, error) {
	return s.Repo.ListPublishedPosts(ctx, offset, limit)
}

func (s *ContentService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.Repo.GetPost(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *ContentService) SubmitContact(ctx context.Context, req transport.ContactRequest) (*models.ContactForm, error) {
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return nil, fmt.Errorf("%w: name, email and message required", ErrValidation)
	}

	form := &models.ContactForm{
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.CreateContact(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *ContentService) ListContacts(ctx context.Context, offset, limit int) (int64, []models.ContactForm, error) {
	return s.Repo.ListContacts(ctx, offset, limit)
}
