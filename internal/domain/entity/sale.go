package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/pymeflow/gestion-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale represents a sales document. Collection figures obey
// AmountCollected <= Total and BalanceDue = Total - AmountCollected at
// all times; only receipt settlement and receipt voids move them.
type Sale struct {
	ID         uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Number     string               `gorm:"size:100;unique;not null" json:"number"`
	CustomerID uuid.UUID            `gorm:"type:uuid;not null;index" json:"customer_id"`
	SaleDate   time.Time            `gorm:"type:date;not null" json:"sale_date"`
	Status     enum.SaleStatus      `gorm:"default:0" json:"status"`
	Collection enum.CollectionState `gorm:"default:0;column:collection_state" json:"collection_state"`

	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	AmountCollected decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount_collected"`
	BalanceDue      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"balance_due"`

	InvoiceID        *uuid.UUID `gorm:"type:uuid;index" json:"invoice_id,omitempty"`
	LastCollectionAt *time.Time `json:"last_collection_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	// Receipts links the receipts that settled part of this sale; a void
	// removes the link while the receipt keeps its allocation records.
	Receipts []Receipt `gorm:"many2many:sale_receipts" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// ApplyCollection records an amount collected against the sale and
// rederives its collection state. The collected amount is capped at the
// sale total to guard against rounding drift.
func (s *Sale) ApplyCollection(amount decimal.Decimal, at time.Time) {
	s.AmountCollected = s.AmountCollected.Add(amount)
	if s.AmountCollected.GreaterThan(s.Total) {
		s.AmountCollected = s.Total
	}
	s.BalanceDue = s.Total.Sub(s.AmountCollected)
	s.LastCollectionAt = &at
	s.refreshCollectionState()
	if s.Collection == enum.CollectionStateSettled && s.Status == enum.SaleStatusConfirmed {
		s.Status = enum.SaleStatusCollected
	}
}

// RevertCollection undoes a previously applied collection amount.
func (s *Sale) RevertCollection(amount decimal.Decimal) {
	s.AmountCollected = s.AmountCollected.Sub(amount)
	if s.AmountCollected.IsNegative() {
		s.AmountCollected = decimal.Zero
	}
	s.BalanceDue = s.Total.Sub(s.AmountCollected)
	s.refreshCollectionState()
	if s.Status == enum.SaleStatusCollected && s.Collection != enum.CollectionStateSettled {
		s.Status = enum.SaleStatusConfirmed
	}
}

func (s *Sale) refreshCollectionState() {
	switch {
	case s.BalanceDue.IsZero():
		s.Collection = enum.CollectionStateSettled
	case s.AmountCollected.IsPositive():
		s.Collection = enum.CollectionStatePartial
	default:
		s.Collection = enum.CollectionStateUnpaid
	}
}

// SaleItem represents a line item in a sale
type SaleItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
