package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pymeflow/gestion-api/internal/domain/entity"
	"github.com/pymeflow/gestion-api/internal/domain/enum"
	"github.com/pymeflow/gestion-api/pkg/pagination"
)

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CustomerID *uuid.UUID
	Status     *enum.SaleStatus
	Collection *enum.CollectionState
	StartDate  *time.Time
	EndDate    *time.Time
}

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// GetByIDs retrieves multiple sales by their IDs in a single query,
	// preserving the order of ids in the result.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Sale, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// GetWithDues returns confirmed sales that still have an outstanding balance.
	GetWithDues(ctx context.Context, customerID *uuid.UUID, params *pagination.PaginationParams) ([]entity.Sale, int64, error)
	// LinkReceipt and UnlinkReceipt maintain the sale<->receipt association.
	LinkReceipt(ctx context.Context, saleID, receiptID uuid.UUID) error
	UnlinkReceipt(ctx context.Context, saleID, receiptID uuid.UUID) error
}

// SaleItemRepository defines the interface for sale line items
type SaleItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.SaleItem) error
}
