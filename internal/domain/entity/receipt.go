package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/pymeflow/gestion-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receipt records money collected from a customer in one operation. It
// is created once, together with its allocations, tenders and the
// ledger/cash side effects, inside a single transaction; afterwards it
// is immutable except for the Active -> Void transition.
type Receipt struct {
	ID         uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Number     string             `gorm:"size:100;unique;not null" json:"number"`
	CustomerID uuid.UUID          `gorm:"type:uuid;not null;index" json:"customer_id"`
	Date       time.Time          `gorm:"type:date;not null" json:"date"`
	Mode       enum.ReceiptMode   `gorm:"default:0" json:"mode"`
	Status     enum.ReceiptStatus `gorm:"default:0" json:"status"`

	AmountDue       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount_due"`
	AmountCollected decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount_collected"`
	ChangeGiven     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"change_given"`
	AmountShort     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount_short"`

	CollectionTiming string  `gorm:"size:50" json:"collection_timing,omitempty"`
	Observations     *string `gorm:"type:text" json:"observations,omitempty"`

	CreatedBy  string     `gorm:"size:255;not null" json:"created_by"`
	ModifiedBy *string    `gorm:"size:255" json:"modified_by,omitempty"`
	VoidReason *string    `gorm:"type:text" json:"void_reason,omitempty"`
	VoidedAt   *time.Time `json:"voided_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer    *Customer           `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Allocations []ReceiptAllocation `gorm:"foreignKey:ReceiptID" json:"allocations"`
	Tenders     []ReceiptTender     `gorm:"foreignKey:ReceiptID" json:"tenders"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// CashTotal sums the tenders that move physical money. Account-credit
// tenders are excluded.
func (r *Receipt) CashTotal() decimal.Decimal {
	total := decimal.Zero
	for _, t := range r.Tenders {
		if t.Method.MovesMoney() {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// ReceiptAllocation is the portion of a receipt applied to one sale.
// Invariant: 0 < AmountApplied <= BalanceBefore and
// BalanceAfter = BalanceBefore - AmountApplied.
type ReceiptAllocation struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID  uuid.UUID `gorm:"type:uuid;not null;index" json:"receipt_id"`
	SaleID     uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	SaleNumber string    `gorm:"size:100;not null" json:"sale_number"`

	SaleTotal     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"sale_total"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance_before"`
	AmountApplied decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount_applied"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance_after"`

	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new allocation
func (a *ReceiptAllocation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptAllocation model
func (ReceiptAllocation) TableName() string {
	return "receipt_allocations"
}

// ReceiptTender is one payment line within a receipt.
type ReceiptTender struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID uuid.UUID          `gorm:"type:uuid;not null;index" json:"receipt_id"`
	Method    enum.PaymentMethod `gorm:"not null" json:"method"`
	Amount    decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"amount"`

	Bank         *string    `gorm:"size:255" json:"bank,omitempty"`
	CheckNumber  *string    `gorm:"size:100" json:"check_number,omitempty"`
	CheckDueDate *time.Time `gorm:"type:date" json:"check_due_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new tender
func (t *ReceiptTender) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptTender model
func (ReceiptTender) TableName() string {
	return "receipt_tenders"
}
