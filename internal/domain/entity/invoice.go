package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/pymeflow/gestion-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice is a draft tax invoice created for a collected sale by the
// invoicing worker.
type Invoice struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Number     string          `gorm:"size:100;unique;not null" json:"number"`
	SaleID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"sale_id"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Draft      bool            `gorm:"not null;default:true" json:"draft"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceJob is an outbox row asking for a draft invoice. It is written
// inside the settlement transaction so a committed receipt can never
// lose its invoicing request, and drained by the invoicing worker
// outside the settlement's failure domain.
type InvoiceJob struct {
	ID         uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	SaleID     uuid.UUID             `gorm:"type:uuid;not null;index" json:"sale_id"`
	CustomerID uuid.UUID             `gorm:"type:uuid;not null;index" json:"customer_id"`
	ReceiptID  uuid.UUID             `gorm:"type:uuid;not null;index" json:"receipt_id"`
	Status     enum.InvoiceJobStatus `gorm:"not null;default:0;index" json:"status"`
	Attempts   int                   `gorm:"not null;default:0" json:"attempts"`
	LastError  *string               `gorm:"type:text" json:"last_error,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new invoice job
func (j *InvoiceJob) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceJob model
func (InvoiceJob) TableName() string {
	return "invoice_jobs"
}
