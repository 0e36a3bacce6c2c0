package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer represents a customer account. RunningBalance mirrors the
// balance of the latest non-voided ledger entry and is written in the
// same transaction as every ledger append, so concurrent settlements
// never race a most-recent-by-date scan.
type Customer struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name    string    `gorm:"size:255;not null" json:"name"`
	CUIT    *string   `gorm:"size:20;column:cuit" json:"cuit,omitempty"`
	Email   *string   `gorm:"size:255" json:"email,omitempty"`
	Phone   *string   `gorm:"size:50" json:"phone,omitempty"`
	Address *string   `gorm:"type:text" json:"address,omitempty"`

	RunningBalance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"running_balance"`

	// Auto-invoicing runs for a collected sale only when both flags are set.
	AutoInvoicing      bool `gorm:"not null;default:false" json:"auto_invoicing"`
	RequiresTaxInvoice bool `gorm:"not null;default:false" json:"requires_tax_invoice"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sales    []Sale    `gorm:"foreignKey:CustomerID" json:"-"`
	Receipts []Receipt `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
