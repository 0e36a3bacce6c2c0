package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pymeflow/gestion-api/internal/domain/entity"
	"github.com/pymeflow/gestion-api/internal/domain/repository"
	"github.com/pymeflow/gestion-api/pkg/apperror"
	"github.com/pymeflow/gestion-api/pkg/pagination"
)

// ProductInput carries product create and update requests.
type ProductInput struct {
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Stock      int             `json:"stock"`
	StockAlert int             `json:"stock_alert"`
}

// ProductService manages the product catalog.
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProduct creates a catalog product.
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}
	product := &entity.Product{
		Name:       input.Name,
		SKU:        input.SKU,
		UnitPrice:  input.UnitPrice,
		Stock:      input.Stock,
		StockAlert: input.StockAlert,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID.
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct rewrites a product's catalog data.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Name = input.Name
	product.SKU = input.SKU
	product.UnitPrice = input.UnitPrice
	product.Stock = input.Stock
	product.StockAlert = input.StockAlert
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts returns a paginated, optionally searched product page.
func (s *ProductService) ListProducts(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Product], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	products, total, err := s.productRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	p := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(products, p), nil
}

func validateProduct(input *ProductInput) error {
	if input.Name == "" {
		return apperror.NewValidationError("name is required")
	}
	if input.SKU == "" {
		return apperror.NewValidationError("sku is required")
	}
	if input.UnitPrice.IsNegative() {
		return apperror.NewValidationError("unit price cannot be negative")
	}
	if input.Stock < 0 {
		return apperror.NewValidationError("stock cannot be negative")
	}
	return nil
}
