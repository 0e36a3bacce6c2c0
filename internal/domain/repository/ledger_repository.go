package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pymeflow/gestion-api/internal/domain/entity"
	"github.com/pymeflow/gestion-api/pkg/pagination"
)

// LedgerRepository defines the interface for the append-only customer
// account ledger.
type LedgerRepository interface {
	Append(ctx context.Context, entry *entity.LedgerEntry) error
	// MarkVoidedByDocument flips the voided flag on the entries a
	// document produced. The entries themselves are never rewritten.
	MarkVoidedByDocument(ctx context.Context, documentID uuid.UUID) error
	ListForCustomer(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) ([]entity.LedgerEntry, int64, error)
}
