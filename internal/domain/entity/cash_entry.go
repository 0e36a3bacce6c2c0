package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/pymeflow/gestion-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CashEntry is one treasury movement in the cash book. Entries created
// by a receipt carry its id and are locked: they cannot be edited or
// deleted independently, only voided together with the receipt.
type CashEntry struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Date          time.Time          `gorm:"not null" json:"date"`
	Account       string             `gorm:"size:255;not null" json:"account"`
	Category      string             `gorm:"size:100;not null" json:"category"`
	PaymentMethod enum.PaymentMethod `gorm:"not null" json:"payment_method"`
	Direction     enum.CashDirection `gorm:"not null" json:"direction"`
	Amount        decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description   string             `gorm:"size:255" json:"description,omitempty"`

	ReceiptID *uuid.UUID `gorm:"type:uuid;index" json:"receipt_id,omitempty"`

	Voided    bool           `gorm:"not null;default:false" json:"voided"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new cash entry
func (e *CashEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashEntry model
func (CashEntry) TableName() string {
	return "cash_entries"
}

// Locked reports whether the entry belongs to a receipt and is closed
// to independent edits.
func (e *CashEntry) Locked() bool {
	return e.ReceiptID != nil
}
