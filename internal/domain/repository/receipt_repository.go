package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pymeflow/gestion-api/internal/domain/entity"
	"github.com/pymeflow/gestion-api/internal/domain/enum"
	"github.com/pymeflow/gestion-api/pkg/pagination"
)

// ReceiptFilterParams contains filtering parameters for receipt queries
type ReceiptFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
	Status     *enum.ReceiptStatus
	StartDate  *time.Time
	EndDate    *time.Time
}

// ReceiptRepository defines the interface for receipt data operations
type ReceiptRepository interface {
	// Create persists the receipt together with its allocations and tenders.
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	// GetForUpdate loads the bare receipt row under a row lock, so the
	// Active -> Void transition can be checked and made atomically.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	// GetWithDetails loads the receipt with allocations, tenders and customer.
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	Update(ctx context.Context, receipt *entity.Receipt) error
	List(ctx context.Context, params *ReceiptFilterParams) ([]entity.Receipt, int64, error)
}
