package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pymeflow/gestion-api/internal/domain/entity"
	"github.com/pymeflow/gestion-api/internal/domain/enum"
	domainRepo "github.com/pymeflow/gestion-api/internal/domain/repository"
	"github.com/pymeflow/gestion-api/pkg/pagination"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return conn(ctx, r.db).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := conn(ctx, r.db).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

// GetByIDs loads the requested sales in one query and returns them in
// the order the ids were given; allocation order follows caller order.
func (r *saleRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Sale, error) {
	if len(ids) == 0 {
		return []entity.Sale{}, nil
	}
	var sales []entity.Sale
	err := conn(ctx, r.db).Where("id IN ?", ids).Find(&sales).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]entity.Sale, len(sales))
	for _, s := range sales {
		byID[s.ID] = s
	}
	ordered := make([]entity.Sale, 0, len(sales))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered, nil
}

func (r *saleRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := conn(ctx, r.db).
		Preload("Customer").
		Preload("Items.Product").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) Update(ctx context.Context, sale *entity.Sale) error {
	return conn(ctx, r.db).Save(sale).Error
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := conn(ctx, r.db).Model(&entity.Sale{})

	if params.Search != "" {
		query = query.Where("number ILIKE ?", "%"+params.Search+"%")
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.Collection != nil {
		query = query.Where("collection_state = ?", *params.Collection)
	}

	if params.StartDate != nil {
		query = query.Where("sale_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("sale_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order("created_at DESC").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) GetWithDues(ctx context.Context, customerID *uuid.UUID, params *pagination.PaginationParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := conn(ctx, r.db).Model(&entity.Sale{}).
		Where("balance_due > 0").
		Where("status IN ?", []enum.SaleStatus{enum.SaleStatusConfirmed, enum.SaleStatusCollected, enum.SaleStatusInvoiced})
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Customer").
		Order("sale_date ASC").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) LinkReceipt(ctx context.Context, saleID, receiptID uuid.UUID) error {
	return conn(ctx, r.db).
		Exec("INSERT INTO sale_receipts (sale_id, receipt_id) VALUES (?, ?)", saleID, receiptID).Error
}

func (r *saleRepository) UnlinkReceipt(ctx context.Context, saleID, receiptID uuid.UUID) error {
	return conn(ctx, r.db).
		Exec("DELETE FROM sale_receipts WHERE sale_id = ? AND receipt_id = ?", saleID, receiptID).Error
}

type saleItemRepository struct {
	db *gorm.DB
}

// NewSaleItemRepository creates a new sale item repository
func NewSaleItemRepository(db *gorm.DB) domainRepo.SaleItemRepository {
	return &saleItemRepository{db: db}
}

func (r *saleItemRepository) CreateBatch(ctx context.Context, items []entity.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	return conn(ctx, r.db).Create(&items).Error
}
