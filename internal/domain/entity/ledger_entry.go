package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/pymeflow/gestion-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerEntry is one append-only record in a customer's account ledger.
// Balance = prior balance + Debit - Credit; a positive balance means the
// customer owes money. Entries are never updated in place: a void
// appends a compensating entry and flips Voided on the original.
type LedgerEntry struct {
	ID         uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID            `gorm:"type:uuid;not null;index" json:"customer_id"`
	Date       time.Time            `gorm:"not null" json:"date"`
	Type       enum.LedgerEntryType `gorm:"not null" json:"type"`

	// DocumentID references the sale or receipt that produced the entry.
	DocumentID uuid.UUID `gorm:"type:uuid;not null;index" json:"document_id"`

	Debit   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"debit"`
	Credit  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"credit"`
	Balance decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance"`

	Voided    bool      `gorm:"not null;default:false" json:"voided"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new ledger entry
func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LedgerEntry model
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
