package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pymeflow/gestion-api/internal/domain/entity"
	"github.com/pymeflow/gestion-api/internal/domain/enum"
	"github.com/pymeflow/gestion-api/internal/domain/repository"
	"github.com/pymeflow/gestion-api/pkg/apperror"
	"github.com/pymeflow/gestion-api/pkg/pagination"
)

// CashEntryInput carries a manual treasury movement: an expense, a
// deposit, anything not produced by a receipt.
type CashEntryInput struct {
	Date        *time.Time         `json:"date,omitempty"`
	Account     string             `json:"account"`
	Category    string             `json:"category"`
	Method      enum.PaymentMethod `json:"method"`
	Direction   enum.CashDirection `json:"direction"`
	Amount      decimal.Decimal    `json:"amount"`
	Description string             `json:"description"`
}

// CashService manages the treasury cash book. Entries created by a
// receipt are locked here: they change only when their receipt is voided.
type CashService struct {
	cashRepo repository.CashRepository
}

// NewCashService creates a new cash service
func NewCashService(cashRepo repository.CashRepository) *CashService {
	return &CashService{cashRepo: cashRepo}
}

// CreateEntry records a manual cash movement.
func (s *CashService) CreateEntry(ctx context.Context, input *CashEntryInput) (*entity.CashEntry, error) {
	if err := validateCashEntry(input); err != nil {
		return nil, err
	}
	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}
	entry := &entity.CashEntry{
		Date:          date,
		Account:       input.Account,
		Category:      input.Category,
		PaymentMethod: input.Method,
		Direction:     input.Direction,
		Amount:        input.Amount,
		Description:   input.Description,
	}
	if err := s.cashRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateEntry rewrites a manual cash movement.
func (s *CashService) UpdateEntry(ctx context.Context, id uuid.UUID, input *CashEntryInput) (*entity.CashEntry, error) {
	if err := validateCashEntry(input); err != nil {
		return nil, err
	}
	entry, err := s.getUnlocked(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Date != nil {
		entry.Date = *input.Date
	}
	entry.Account = input.Account
	entry.Category = input.Category
	entry.PaymentMethod = input.Method
	entry.Direction = input.Direction
	entry.Amount = input.Amount
	entry.Description = input.Description

	if err := s.cashRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry removes a manual cash movement.
func (s *CashService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getUnlocked(ctx, id); err != nil {
		return err
	}
	return s.cashRepo.Delete(ctx, id)
}

// GetEntry retrieves one cash movement.
func (s *CashService) GetEntry(ctx context.Context, id uuid.UUID) (*entity.CashEntry, error) {
	entry, err := s.cashRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Cash entry")
	}
	return entry, nil
}

// ListEntries returns a filtered, paginated page of the cash book.
func (s *CashService) ListEntries(ctx context.Context, params *repository.CashFilterParams) (*pagination.PaginatedResult[entity.CashEntry], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	entries, total, err := s.cashRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(entries, p), nil
}

func (s *CashService) getUnlocked(ctx context.Context, id uuid.UUID) (*entity.CashEntry, error) {
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.Locked() {
		return nil, apperror.NewValidationError("cash entry belongs to a receipt and cannot be changed directly")
	}
	return entry, nil
}

func validateCashEntry(input *CashEntryInput) error {
	if input.Account == "" {
		return apperror.NewValidationError("account is required")
	}
	if !input.Method.Valid() || !input.Method.MovesMoney() {
		return apperror.NewValidationError("payment method does not move money")
	}
	if !input.Amount.IsPositive() {
		return apperror.NewValidationError("amount must be greater than zero")
	}
	return nil
}
