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

// SaleItemInput is one line of a sale request. A zero unit price falls
// back to the product's list price.
type SaleItemInput struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleInput carries a new sale request.
type CreateSaleInput struct {
	CustomerID uuid.UUID       `json:"customer_id"`
	SaleDate   *time.Time      `json:"sale_date,omitempty"`
	Items      []SaleItemInput `json:"items"`
}

// SaleService manages the sale lifecycle. Confirming a sale charges the
// customer's account; cancellation is only possible while no money has
// been collected against it.
type SaleService struct {
	atomic       repository.Atomic
	saleRepo     repository.SaleRepository
	itemRepo     repository.SaleItemRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	ledgerRepo   repository.LedgerRepository
}

// NewSaleService creates a new sale service
func NewSaleService(
	atomic repository.Atomic,
	saleRepo repository.SaleRepository,
	itemRepo repository.SaleItemRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	ledgerRepo repository.LedgerRepository,
) *SaleService {
	return &SaleService{
		atomic:       atomic,
		saleRepo:     saleRepo,
		itemRepo:     itemRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// CreateSale creates a draft sale and reserves stock for its items.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if input.CustomerID == uuid.Nil {
		return nil, apperror.NewValidationError("customer is required")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError("at least one item is required")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewValidationError("item quantities must be greater than zero")
		}
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	productIDs := make([]uuid.UUID, 0, len(input.Items))
	decrements := make(map[uuid.UUID]int, len(input.Items))
	for _, item := range input.Items {
		productIDs = append(productIDs, item.ProductID)
		decrements[item.ProductID] += item.Quantity
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	priceByID := make(map[uuid.UUID]decimal.Decimal, len(products))
	for _, p := range products {
		priceByID[p.ID] = p.UnitPrice
	}
	for _, id := range productIDs {
		if _, ok := priceByID[id]; !ok {
			return nil, apperror.NewNotFoundError("Product")
		}
	}

	saleDate := time.Now()
	if input.SaleDate != nil {
		saleDate = *input.SaleDate
	}

	sale := &entity.Sale{
		Number:     utils.GenerateDocumentNumber("VTA"),
		CustomerID: customer.ID,
		SaleDate:   saleDate,
		Status:     enum.SaleStatusDraft,
		Collection: enum.CollectionStateUnpaid,
	}

	total := decimal.Zero
	items := make([]entity.SaleItem, 0, len(input.Items))
	for _, item := range input.Items {
		price := item.UnitPrice
		if price.IsZero() {
			price = priceByID[item.ProductID]
		}
		lineTotal := price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, entity.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: price,
			Total:     lineTotal,
		})
		total = total.Add(lineTotal)
	}
	sale.Total = total
	sale.BalanceDue = total

	err = s.atomic.Transaction(ctx, func(ctx context.Context) error {
		failed, err := s.productRepo.AtomicDecrementBatch(ctx, decrements)
		if err != nil {
			return err
		}
		if len(failed) > 0 {
			return apperror.NewConflictError("insufficient stock")
		}
		if err := s.saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for i := range items {
			items[i].SaleID = sale.ID
		}
		return s.itemRepo.CreateBatch(ctx, items)
	})
	if err != nil {
		return nil, err
	}

	return s.saleRepo.GetWithItems(ctx, sale.ID)
}

// ConfirmSale moves a draft sale to confirmed and charges the sale
// total to the customer's account ledger.
func (s *SaleService) ConfirmSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Status != enum.SaleStatusDraft {
		return nil, apperror.NewValidationError("only draft sales can be confirmed")
	}

	err = s.atomic.Transaction(ctx, func(ctx context.Context) error {
		customer, err := s.customerRepo.GetByID(ctx, sale.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}

		sale.Status = enum.SaleStatusConfirmed
		if err := s.saleRepo.Update(ctx, sale); err != nil {
			return err
		}

		balance := customer.RunningBalance.Add(sale.Total)
		entry := &entity.LedgerEntry{
			CustomerID: customer.ID,
			Date:       time.Now(),
			Type:       enum.LedgerEntryTypeSaleCharge,
			DocumentID: sale.ID,
			Debit:      sale.Total,
			Balance:    balance,
		}
		if err := s.ledgerRepo.Append(ctx, entry); err != nil {
			return err
		}
		return s.customerRepo.UpdateRunningBalance(ctx, customer.ID, balance)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// CancelSale cancels a sale and releases its stock. Confirmed sales
// can be cancelled only while nothing has been collected; the charge
// posted at confirmation is reversed with a credit adjustment.
func (s *SaleService) CancelSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	switch sale.Status {
	case enum.SaleStatusDraft:
	case enum.SaleStatusConfirmed:
		if sale.AmountCollected.IsPositive() {
			return nil, apperror.NewValidationError("sale has collections; void the receipts first")
		}
	default:
		return nil, apperror.NewValidationError("sale cannot be cancelled in its current state")
	}

	wasConfirmed := sale.Status == enum.SaleStatusConfirmed
	err = s.atomic.Transaction(ctx, func(ctx context.Context) error {
		increments := make(map[uuid.UUID]int, len(sale.Items))
		for _, item := range sale.Items {
			increments[item.ProductID] += item.Quantity
		}
		if err := s.productRepo.AtomicIncrementBatch(ctx, increments); err != nil {
			return err
		}

		if wasConfirmed {
			customer, err := s.customerRepo.GetByID(ctx, sale.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return apperror.NewNotFoundError("Customer")
			}
			balance := customer.RunningBalance.Sub(sale.Total)
			entry := &entity.LedgerEntry{
				CustomerID: customer.ID,
				Date:       time.Now(),
				Type:       enum.LedgerEntryTypeAdjustment,
				DocumentID: sale.ID,
				Credit:     sale.Total,
				Balance:    balance,
			}
			if err := s.ledgerRepo.Append(ctx, entry); err != nil {
				return err
			}
			if err := s.customerRepo.UpdateRunningBalance(ctx, customer.ID, balance); err != nil {
				return err
			}
		}

		sale.Status = enum.SaleStatusCancelled
		return s.saleRepo.Update(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// GetSale retrieves a sale with its items.
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales returns a filtered, paginated page of sales.
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, p), nil
}

// ListSalesWithDues returns confirmed sales that still owe money,
// optionally scoped to one customer. This feeds the collection screen.
func (s *SaleService) ListSalesWithDues(ctx context.Context, customerID *uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Sale], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	sales, total, err := s.saleRepo.GetWithDues(ctx, customerID, params)
	if err != nil {
		return nil, err
	}
	p := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(sales, p), nil
}
