package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pymeflow/gestion-api/internal/domain/entity"
)

// InvoiceRepository defines the interface for draft invoices
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	// GetBySaleID returns the invoice drafted for a sale, or nil; at
	// most one invoice exists per sale.
	GetBySaleID(ctx context.Context, saleID uuid.UUID) (*entity.Invoice, error)
}

// InvoiceJobRepository defines the interface for the auto-invoicing
// outbox. Jobs are written inside the settlement transaction and
// drained by the invoicing worker.
type InvoiceJobRepository interface {
	Create(ctx context.Context, job *entity.InvoiceJob) error
	// GetPending returns up to limit pending jobs, oldest first.
	GetPending(ctx context.Context, limit int) ([]entity.InvoiceJob, error)
	Update(ctx context.Context, job *entity.InvoiceJob) error
}
