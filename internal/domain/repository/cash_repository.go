package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pymeflow/gestion-api/internal/domain/entity"
	"github.com/pymeflow/gestion-api/internal/domain/enum"
	"github.com/pymeflow/gestion-api/pkg/pagination"
)

// CashFilterParams contains filtering parameters for cash book queries
type CashFilterParams struct {
	Pagination *pagination.PaginationParams
	Account    string
	Direction  *enum.CashDirection
	StartDate  *time.Time
	EndDate    *time.Time
}

// CashRepository defines the interface for the treasury cash book
type CashRepository interface {
	Create(ctx context.Context, entry *entity.CashEntry) error
	CreateBatch(ctx context.Context, entries []entity.CashEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CashEntry, error)
	Update(ctx context.Context, entry *entity.CashEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	// MarkVoidedByReceipt flags every entry a receipt created as voided.
	MarkVoidedByReceipt(ctx context.Context, receiptID uuid.UUID) error
	List(ctx context.Context, params *CashFilterParams) ([]entity.CashEntry, int64, error)
}
