package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/hoanglamvn01/cosmetic_shop/internal/logging"
	"github.com/hoanglamvn01/cosmetic_shop/internal/models"
	"github.com/hoanglamvn01/cosmetic_shop/internal/repo"
	"github.com/hoanglamvn01/cosmetic_shop/internal/search"
	"github.com/hoanglamvn01/cosmetic_shop/internal/transport"
)

type CatalogService struct {
	Repo    *repo.CatalogRepo
	Reviews *repo.ReviewRepo
	ES      *elasticsearch.Client
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*transport.ProductView, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	views, err := s.withAggregates(ctx, []models.Product{*product})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *CatalogService) GetProducts(ctx context.Context, f repo.ProductFilter, offset, limit int) (int64, []transport.ProductView, error) {
	total, items, err := s.Repo.GetProducts(ctx, f, offset, limit)
	if err != nil {
		return 0, nil, err
	}

	views, err := s.withAggregates(ctx, items)
	if err != nil {
		return 0, nil, err
	}
	return total, views, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	images := make([]models.ProductImage, 0, len(req.Images))
	for i, u := range req.Images {
		images = append(images, models.ProductImage{URL: u, IsPrimary: i == 0})
	}

	product := &models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		BrandID:       req.BrandID,
		Images:        images,
	}

	if _, err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.index(ctx, product)
	return product, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	product, err := s.Repo.PatchProduct(ctx, req, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	s.index(ctx, product)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	err := s.Repo.DeleteProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	if err != nil {
		return err
	}

	if err := search.DeleteProduct(ctx, s.ES, id); err != nil {
		logging.FromContext(ctx).Error("search deindex error", "product_id", id, "error", err)
	}
	return nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	if query == "" {
		return 0, nil, fmt.Errorf("%w: query required", ErrValidation)
	}
	return search.Search(ctx, s.ES, query, from, size)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	cat := &models.Category{Name: req.Name, Description: req.Description}
	if err := s.Repo.CreateCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	err := s.Repo.DeleteCategory(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: category %d", ErrNotFound, id)
	}
	return err
}

func (s *CatalogService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return s.Repo.ListBrands(ctx)
}

func (s *CatalogService) CreateBrand(ctx context.Context, req transport.BrandRequest) (*models.Brand, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	brand := &models.Brand{Name: req.Name, Logo: req.Logo}
	if err := s.Repo.CreateBrand(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *CatalogService) DeleteBrand(ctx context.Context, id uint) error {
	err := s.Repo.DeleteBrand(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: brand %d", ErrNotFound, id)
	}
	return err
}

func (s *CatalogService) withAggregates(ctx context.Context, items []models.Product) ([]transport.ProductView, error) {
	ids := make([]uint, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].ID)
	}

	aggs, err := s.Reviews.Aggregates(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]transport.ProductView, 0, len(items))
	for i := range items {
		agg := aggs[items[i].ID]
		views = append(views, transport.ProductView{
			Product:     items[i],
			AvgRating:   agg.AvgRating,
			ReviewCount: agg.ReviewCount,
		})
	}
	return views, nil
}

func (s *CatalogService) index(ctx context.Context, product *models.Product) {
	if err := search.IndexProduct(ctx, s.ES, product); err != nil {
		logging.FromContext(ctx).Error("search index error", "product_id", product.ID, "error", err)
	}
}
