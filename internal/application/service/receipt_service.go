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
	"github.com/pymeflow/gestion-api/pkg/utils"
)

// TenderInput is one payment line of a receipt request.
type TenderInput struct {
	Method       enum.PaymentMethod `json:"method"`
	Amount       decimal.Decimal    `json:"amount"`
	Bank         *string            `json:"bank,omitempty"`
	CheckNumber  *string            `json:"check_number,omitempty"`
	CheckDueDate *time.Time         `json:"check_due_date,omitempty"`
}

// CreateReceiptInput carries everything needed to settle a collection.
// An empty SaleIDs slice makes the receipt a regularization: money is
// recorded against the customer's account without touching any sale.
type CreateReceiptInput struct {
	CustomerID       uuid.UUID     `json:"customer_id"`
	SaleIDs          []uuid.UUID   `json:"sale_ids"`
	Tenders          []TenderInput `json:"tenders"`
	CollectionTiming string        `json:"collection_timing"`
	Observations     *string       `json:"observations,omitempty"`
	CreatedBy        string        `json:"created_by"`
}

// VoidReceiptInput carries the void request for an active receipt.
type VoidReceiptInput struct {
	Reason     string `json:"reason"`
	ModifiedBy string `json:"modified_by"`
}

// ReceiptService settles customer collections. Creating a receipt
// updates the selected sales, appends the customer ledger entry and
// records the treasury movements in one transaction; voiding reverses
// all of it the same way.
type ReceiptService struct {
	atomic       repository.Atomic
	receiptRepo  repository.ReceiptRepository
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	ledgerRepo   repository.LedgerRepository
	cashRepo     repository.CashRepository
	invoiceRepo  repository.InvoiceRepository
	jobRepo      repository.InvoiceJobRepository
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	atomic repository.Atomic,
	receiptRepo repository.ReceiptRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	ledgerRepo repository.LedgerRepository,
	cashRepo repository.CashRepository,
	invoiceRepo repository.InvoiceRepository,
	jobRepo repository.InvoiceJobRepository,
) *ReceiptService {
	return &ReceiptService{
		atomic:       atomic,
		receiptRepo:  receiptRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
		cashRepo:     cashRepo,
		invoiceRepo:  invoiceRepo,
		jobRepo:      jobRepo,
	}
}

// CreateReceipt settles a collection. All writes happen inside a single
// transaction; if anything fails, no sale, ledger or cash state changes.
func (s *ReceiptService) CreateReceipt(ctx context.Context, input *CreateReceiptInput) (*entity.Receipt, error) {
	mode, err := validateCreateReceipt(input)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, t := range input.Tenders {
		total = total.Add(t.Amount)
	}

	now := time.Now()
	receipt := &entity.Receipt{
		Number:           utils.GenerateDocumentNumber("REC"),
		CustomerID:       input.CustomerID,
		Date:             now,
		Mode:             mode,
		Status:           enum.ReceiptStatusActive,
		AmountCollected:  total,
		CollectionTiming: input.CollectionTiming,
		Observations:     input.Observations,
		CreatedBy:        input.CreatedBy,
	}
	for _, t := range input.Tenders {
		receipt.Tenders = append(receipt.Tenders, entity.ReceiptTender{
			Method:       t.Method,
			Amount:       t.Amount,
			Bank:         t.Bank,
			CheckNumber:  t.CheckNumber,
			CheckDueDate: t.CheckDueDate,
		})
	}

	err = s.atomic.Transaction(ctx, func(ctx context.Context) error {
		// Locking the customer row serializes concurrent settlements, so
		// the balance read here is the one the ledger entry chains from.
		customer, err := s.customerRepo.GetForUpdate(ctx, input.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}

		var collected []*entity.Sale

		if mode == enum.ReceiptModeSaleCollection {
			sales, err := s.loadSalesForCollection(ctx, customer.ID, input.SaleIDs)
			if err != nil {
				return err
			}

			allocations, err := allocate(sales, total, now)
			if err != nil {
				return err
			}
			receipt.Allocations = allocations

			amountDue := decimal.Zero
			for _, a := range allocations {
				amountDue = amountDue.Add(a.BalanceBefore)
			}
			receipt.AmountDue = amountDue
			receipt.ChangeGiven = decimal.Max(decimal.Zero, total.Sub(amountDue))
			receipt.AmountShort = decimal.Max(decimal.Zero, amountDue.Sub(total))

			for _, a := range allocations {
				for _, sale := range sales {
					if sale.ID == a.SaleID {
						collected = append(collected, sale)
					}
				}
			}
			for _, sale := range collected {
				if err := s.saleRepo.Update(ctx, sale); err != nil {
					return err
				}
			}
		} else {
			// A regularization has no sales to owe against; the money
			// collected is the amount due by definition.
			receipt.AmountDue = total
			receipt.ChangeGiven = decimal.Zero
			receipt.AmountShort = decimal.Zero
		}

		if err := s.receiptRepo.Create(ctx, receipt); err != nil {
			return err
		}

		for _, sale := range collected {
			if err := s.saleRepo.LinkReceipt(ctx, sale.ID, receipt.ID); err != nil {
				return err
			}
		}

		cashTotal := receipt.CashTotal()
		if cashTotal.IsPositive() {
			if err := s.postCollection(ctx, customer, receipt, cashTotal, now); err != nil {
				return err
			}
			if err := s.recordCashEntries(ctx, receipt, now); err != nil {
				return err
			}
		}

		if customer.AutoInvoicing && customer.RequiresTaxInvoice {
			if err := s.enqueueInvoiceJobs(ctx, customer.ID, receipt.ID, collected); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.receiptRepo.GetWithDetails(ctx, receipt.ID)
}

// loadSalesForCollection resolves the requested sales and checks they
// can take part in a collection for this customer.
func (s *ReceiptService) loadSalesForCollection(ctx context.Context, customerID uuid.UUID, saleIDs []uuid.UUID) ([]*entity.Sale, error) {
	found, err := s.saleRepo.GetByIDs(ctx, saleIDs)
	if err != nil {
		return nil, err
	}
	if len(found) != len(saleIDs) {
		return nil, apperror.NewNotFoundError("Sale")
	}

	sales := make([]*entity.Sale, len(found))
	for i := range found {
		sale := &found[i]
		if sale.CustomerID != customerID {
			return nil, apperror.NewValidationError("sale " + sale.Number + " belongs to another customer")
		}
		if !sale.Status.Confirmed() {
			return nil, apperror.NewValidationError("sale " + sale.Number + " is not confirmed")
		}
		sales[i] = sale
	}
	return sales, nil
}

// postCollection appends the ledger credit and moves the running
// balance down by the money actually collected.
func (s *ReceiptService) postCollection(ctx context.Context, customer *entity.Customer, receipt *entity.Receipt, cashTotal decimal.Decimal, at time.Time) error {
	balance := customer.RunningBalance.Sub(cashTotal)
	entry := &entity.LedgerEntry{
		CustomerID: customer.ID,
		Date:       at,
		Type:       enum.LedgerEntryTypeReceipt,
		DocumentID: receipt.ID,
		Credit:     cashTotal,
		Balance:    balance,
	}
	if err := s.ledgerRepo.Append(ctx, entry); err != nil {
		return err
	}
	if err := s.customerRepo.UpdateRunningBalance(ctx, customer.ID, balance); err != nil {
		return err
	}
	customer.RunningBalance = balance
	return nil
}

// recordCashEntries writes one treasury movement per money-moving
// tender. Account-credit tenders never reach the cash book.
func (s *ReceiptService) recordCashEntries(ctx context.Context, receipt *entity.Receipt, at time.Time) error {
	var entries []entity.CashEntry
	for _, t := range receipt.Tenders {
		if !t.Method.MovesMoney() {
			continue
		}
		bank := ""
		if t.Bank != nil {
			bank = *t.Bank
		}
		entries = append(entries, entity.CashEntry{
			Date:          at,
			Account:       t.Method.TreasuryAccount(bank),
			Category:      t.Method.CashCategory(),
			PaymentMethod: t.Method,
			Direction:     enum.CashDirectionInflow,
			Amount:        t.Amount,
			Description:   "Cobranza recibo " + receipt.Number,
			ReceiptID:     &receipt.ID,
		})
	}
	if len(entries) == 0 {
		return nil
	}
	return s.cashRepo.CreateBatch(ctx, entries)
}

// enqueueInvoiceJobs writes an outbox row for every collected sale that
// has no invoice yet. The rows commit with the settlement, so the
// invoicing worker can fail and retry without ever touching money.
func (s *ReceiptService) enqueueInvoiceJobs(ctx context.Context, customerID, receiptID uuid.UUID, sales []*entity.Sale) error {
	for _, sale := range sales {
		if sale.InvoiceID != nil {
			continue
		}
		job := &entity.InvoiceJob{
			SaleID:     sale.ID,
			CustomerID: customerID,
			ReceiptID:  receiptID,
			Status:     enum.InvoiceJobStatusPending,
		}
		if err := s.jobRepo.Create(ctx, job); err != nil {
			return err
		}
	}
	return nil
}

// VoidReceipt reverses a settlement: sales get their balances back, a
// compensating ledger entry restores the customer balance and the
// receipt's cash entries are flagged voided. Everything runs in one
// transaction so a half-voided receipt cannot exist.
func (s *ReceiptService) VoidReceipt(ctx context.Context, id uuid.UUID, input *VoidReceiptInput) (*entity.Receipt, error) {
	if input.Reason == "" {
		return nil, apperror.NewValidationError("void reason is required")
	}
	if input.ModifiedBy == "" {
		return nil, apperror.NewValidationError("modified_by is required")
	}

	now := time.Now()
	err := s.atomic.Transaction(ctx, func(ctx context.Context) error {
		// The active check must see the committed status, so the row is
		// locked and re-read inside the transaction; a concurrent void
		// waits here and then fails it.
		locked, err := s.receiptRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if locked == nil {
			return apperror.NewNotFoundError("Receipt")
		}
		if locked.Status == enum.ReceiptStatusVoid {
			return apperror.NewValidationError("receipt is already void")
		}

		receipt, err := s.receiptRepo.GetWithDetails(ctx, id)
		if err != nil {
			return err
		}

		for _, a := range receipt.Allocations {
			sale, err := s.saleRepo.GetByID(ctx, a.SaleID)
			if err != nil {
				return err
			}
			if sale == nil {
				return apperror.NewNotFoundError("Sale")
			}
			sale.RevertCollection(a.AmountApplied)
			if err := s.saleRepo.Update(ctx, sale); err != nil {
				return err
			}
			if err := s.saleRepo.UnlinkReceipt(ctx, sale.ID, receipt.ID); err != nil {
				return err
			}
		}

		cashTotal := receipt.CashTotal()
		if cashTotal.IsPositive() {
			customer, err := s.customerRepo.GetForUpdate(ctx, receipt.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return apperror.NewNotFoundError("Customer")
			}

			// Flag the original entry first so the compensating one,
			// which carries the same document id, stays live.
			if err := s.ledgerRepo.MarkVoidedByDocument(ctx, receipt.ID); err != nil {
				return err
			}
			balance := customer.RunningBalance.Add(cashTotal)
			entry := &entity.LedgerEntry{
				CustomerID: customer.ID,
				Date:       now,
				Type:       enum.LedgerEntryTypeAdjustment,
				DocumentID: receipt.ID,
				Debit:      cashTotal,
				Balance:    balance,
			}
			if err := s.ledgerRepo.Append(ctx, entry); err != nil {
				return err
			}
			if err := s.customerRepo.UpdateRunningBalance(ctx, customer.ID, balance); err != nil {
				return err
			}
			if err := s.cashRepo.MarkVoidedByReceipt(ctx, receipt.ID); err != nil {
				return err
			}
		}

		receipt.Status = enum.ReceiptStatusVoid
		receipt.VoidReason = &input.Reason
		receipt.VoidedAt = &now
		receipt.ModifiedBy = &input.ModifiedBy
		return s.receiptRepo.Update(ctx, receipt)
	})
	if err != nil {
		return nil, err
	}

	return s.receiptRepo.GetWithDetails(ctx, id)
}

// GetReceipt retrieves a receipt with its allocations and tenders.
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// ListReceipts returns a filtered, paginated page of receipts.
func (s *ReceiptService) ListReceipts(ctx context.Context, params *repository.ReceiptFilterParams) (*pagination.PaginatedResult[entity.Receipt], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	receipts, total, err := s.receiptRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(receipts, p), nil
}

// validateCreateReceipt runs the request-level checks and determines
// the receipt mode. Sale-level checks need the database and run inside
// the settlement transaction.
func validateCreateReceipt(input *CreateReceiptInput) (enum.ReceiptMode, error) {
	if input.CustomerID == uuid.Nil {
		return 0, apperror.NewValidationError("customer is required")
	}
	if len(input.Tenders) == 0 {
		return 0, apperror.NewValidationError("at least one payment line is required")
	}
	for _, t := range input.Tenders {
		if !t.Method.Valid() {
			return 0, apperror.NewValidationError("unknown payment method")
		}
		if !t.Amount.IsPositive() {
			return 0, apperror.NewValidationError("payment amounts must be greater than zero")
		}
	}
	if input.CreatedBy == "" {
		return 0, apperror.NewValidationError("created_by is required")
	}
	// A repeated sale id would allocate the same balance twice.
	seen := make(map[uuid.UUID]struct{}, len(input.SaleIDs))
	for _, id := range input.SaleIDs {
		if _, dup := seen[id]; dup {
			return 0, apperror.NewValidationError("sale ids must not repeat")
		}
		seen[id] = struct{}{}
	}
	if len(input.SaleIDs) == 0 {
		return enum.ReceiptModeRegularization, nil
	}
	return enum.ReceiptModeSaleCollection, nil
}
