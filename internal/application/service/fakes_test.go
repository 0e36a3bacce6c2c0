package service_test

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pymeflow/gestion-api/internal/domain/entity"
	"github.com/pymeflow/gestion-api/internal/domain/enum"
	domainRepo "github.com/pymeflow/gestion-api/internal/domain/repository"
	"github.com/pymeflow/gestion-api/pkg/pagination"
)

// memStore is a stateful in-memory database shared by the fake
// repositories, so a test observes the same evolving balances the
// services produce against Postgres.
type memStore struct {
	customers map[uuid.UUID]*entity.Customer
	products  map[uuid.UUID]*entity.Product
	sales     map[uuid.UUID]*entity.Sale
	saleItems []entity.SaleItem
	receipts  map[uuid.UUID]*entity.Receipt
	ledger    []*entity.LedgerEntry
	cash      []*entity.CashEntry
	invoices  map[uuid.UUID]*entity.Invoice
	jobs      []*entity.InvoiceJob
	links     map[uuid.UUID][]uuid.UUID // saleID -> receiptIDs
}

func newMemStore() *memStore {
	return &memStore{
		customers: make(map[uuid.UUID]*entity.Customer),
		products:  make(map[uuid.UUID]*entity.Product),
		sales:     make(map[uuid.UUID]*entity.Sale),
		receipts:  make(map[uuid.UUID]*entity.Receipt),
		invoices:  make(map[uuid.UUID]*entity.Invoice),
		links:     make(map[uuid.UUID][]uuid.UUID),
	}
}

func (m *memStore) addCustomer(c *entity.Customer) *entity.Customer {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	clone := *c
	m.customers[c.ID] = &clone
	return c
}

func (m *memStore) addSale(s *entity.Sale) *entity.Sale {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	clone := *s
	m.sales[s.ID] = &clone
	return s
}

func (m *memStore) addProduct(p *entity.Product) *entity.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	clone := *p
	m.products[p.ID] = &clone
	return p
}

func (m *memStore) cashForReceipt(receiptID uuid.UUID) []*entity.CashEntry {
	var out []*entity.CashEntry
	for _, e := range m.cash {
		if e.ReceiptID != nil && *e.ReceiptID == receiptID {
			out = append(out, e)
		}
	}
	return out
}

func (m *memStore) ledgerForCustomer(customerID uuid.UUID) []*entity.LedgerEntry {
	var out []*entity.LedgerEntry
	for _, e := range m.ledger {
		if e.CustomerID == customerID {
			out = append(out, e)
		}
	}
	return out
}

// fakeAtomic runs the callback directly; the fakes have no transaction
// to share. A test can set before to mutate the store right as the
// transaction opens, standing in for a write another transaction
// committed first.
type fakeAtomic struct {
	before func()
}

func (a *fakeAtomic) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if a.before != nil {
		a.before()
	}
	return fn(ctx)
}

func confirmedSale(number string, total int64) *entity.Sale {
	t := decimal.NewFromInt(total)
	return &entity.Sale{
		Number:     number,
		Status:     enum.SaleStatusConfirmed,
		Collection: enum.CollectionStateUnpaid,
		Total:      t,
		BalanceDue: t,
	}
}

type fakeCustomerRepo struct{ s *memStore }

func (f *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	f.s.addCustomer(c)
	return nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, ok := f.s.customers[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCustomerRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (*entity.Customer, error) {
	for _, c := range f.s.customers {
		if c.Email != nil && *c.Email == email {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	clone := *c
	f.s.customers[c.ID] = &clone
	return nil
}

func (f *fakeCustomerRepo) UpdateRunningBalance(_ context.Context, id uuid.UUID, balance decimal.Decimal) error {
	f.s.customers[id].RunningBalance = balance
	return nil
}

func (f *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.s.customers, id)
	return nil
}

func (f *fakeCustomerRepo) List(_ context.Context, params *pagination.PaginationParams, _ string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range f.s.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

type fakeSaleRepo struct{ s *memStore }

func (f *fakeSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	f.s.addSale(sale)
	return nil
}

func (f *fakeSaleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, ok := f.s.sales[id]
	if !ok {
		return nil, nil
	}
	clone := *sale
	return &clone, nil
}

func (f *fakeSaleRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Sale, error) {
	var out []entity.Sale
	for _, id := range ids {
		if sale, ok := f.s.sales[id]; ok {
			out = append(out, *sale)
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := f.GetByID(ctx, id)
	if err != nil || sale == nil {
		return sale, err
	}
	for _, item := range f.s.saleItems {
		if item.SaleID == id {
			sale.Items = append(sale.Items, item)
		}
	}
	return sale, nil
}

func (f *fakeSaleRepo) Update(_ context.Context, sale *entity.Sale) error {
	clone := *sale
	f.s.sales[sale.ID] = &clone
	return nil
}

func (f *fakeSaleRepo) List(_ context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var out []entity.Sale
	for _, sale := range f.s.sales {
		out = append(out, *sale)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, int64(len(out)), nil
}

func (f *fakeSaleRepo) GetWithDues(_ context.Context, customerID *uuid.UUID, _ *pagination.PaginationParams) ([]entity.Sale, int64, error) {
	var out []entity.Sale
	for _, sale := range f.s.sales {
		if !sale.BalanceDue.IsPositive() || !sale.Status.Confirmed() {
			continue
		}
		if customerID != nil && sale.CustomerID != *customerID {
			continue
		}
		out = append(out, *sale)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSaleRepo) LinkReceipt(_ context.Context, saleID, receiptID uuid.UUID) error {
	f.s.links[saleID] = append(f.s.links[saleID], receiptID)
	return nil
}

func (f *fakeSaleRepo) UnlinkReceipt(_ context.Context, saleID, receiptID uuid.UUID) error {
	linked := f.s.links[saleID]
	var kept []uuid.UUID
	for _, id := range linked {
		if id != receiptID {
			kept = append(kept, id)
		}
	}
	f.s.links[saleID] = kept
	return nil
}

type fakeSaleItemRepo struct{ s *memStore }

func (f *fakeSaleItemRepo) CreateBatch(_ context.Context, items []entity.SaleItem) error {
	f.s.saleItems = append(f.s.saleItems, items...)
	return nil
}

type fakeReceiptRepo struct{ s *memStore }

func (f *fakeReceiptRepo) Create(_ context.Context, receipt *entity.Receipt) error {
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	for i := range receipt.Allocations {
		if receipt.Allocations[i].ID == uuid.Nil {
			receipt.Allocations[i].ID = uuid.New()
		}
		receipt.Allocations[i].ReceiptID = receipt.ID
	}
	for i := range receipt.Tenders {
		if receipt.Tenders[i].ID == uuid.Nil {
			receipt.Tenders[i].ID = uuid.New()
		}
		receipt.Tenders[i].ReceiptID = receipt.ID
	}
	clone := *receipt
	f.s.receipts[receipt.ID] = &clone
	return nil
}

func (f *fakeReceiptRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, ok := f.s.receipts[id]
	if !ok {
		return nil, nil
	}
	clone := *receipt
	return &clone, nil
}

func (f *fakeReceiptRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeReceiptRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeReceiptRepo) Update(_ context.Context, receipt *entity.Receipt) error {
	clone := *receipt
	f.s.receipts[receipt.ID] = &clone
	return nil
}

func (f *fakeReceiptRepo) List(_ context.Context, params *domainRepo.ReceiptFilterParams) ([]entity.Receipt, int64, error) {
	var out []entity.Receipt
	for _, receipt := range f.s.receipts {
		if params.CustomerID != nil && receipt.CustomerID != *params.CustomerID {
			continue
		}
		if params.Status != nil && receipt.Status != *params.Status {
			continue
		}
		out = append(out, *receipt)
	}
	return out, int64(len(out)), nil
}

type fakeLedgerRepo struct{ s *memStore }

func (f *fakeLedgerRepo) Append(_ context.Context, entry *entity.LedgerEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	clone := *entry
	f.s.ledger = append(f.s.ledger, &clone)
	return nil
}

func (f *fakeLedgerRepo) MarkVoidedByDocument(_ context.Context, documentID uuid.UUID) error {
	for _, e := range f.s.ledger {
		if e.DocumentID == documentID {
			e.Voided = true
		}
	}
	return nil
}

func (f *fakeLedgerRepo) ListForCustomer(_ context.Context, customerID uuid.UUID, _ *pagination.PaginationParams) ([]entity.LedgerEntry, int64, error) {
	var out []entity.LedgerEntry
	for _, e := range f.s.ledger {
		if e.CustomerID == customerID {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

type fakeCashRepo struct{ s *memStore }

func (f *fakeCashRepo) Create(_ context.Context, entry *entity.CashEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	clone := *entry
	f.s.cash = append(f.s.cash, &clone)
	return nil
}

func (f *fakeCashRepo) CreateBatch(ctx context.Context, entries []entity.CashEntry) error {
	for i := range entries {
		if err := f.Create(ctx, &entries[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeCashRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.CashEntry, error) {
	for _, e := range f.s.cash {
		if e.ID == id {
			clone := *e
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeCashRepo) Update(_ context.Context, entry *entity.CashEntry) error {
	for i, e := range f.s.cash {
		if e.ID == entry.ID {
			clone := *entry
			f.s.cash[i] = &clone
			return nil
		}
	}
	return nil
}

func (f *fakeCashRepo) Delete(_ context.Context, id uuid.UUID) error {
	var kept []*entity.CashEntry
	for _, e := range f.s.cash {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	f.s.cash = kept
	return nil
}

func (f *fakeCashRepo) MarkVoidedByReceipt(_ context.Context, receiptID uuid.UUID) error {
	for _, e := range f.s.cash {
		if e.ReceiptID != nil && *e.ReceiptID == receiptID {
			e.Voided = true
		}
	}
	return nil
}

func (f *fakeCashRepo) List(_ context.Context, params *domainRepo.CashFilterParams) ([]entity.CashEntry, int64, error) {
	var out []entity.CashEntry
	for _, e := range f.s.cash {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

type fakeInvoiceRepo struct{ s *memStore }

func (f *fakeInvoiceRepo) Create(_ context.Context, invoice *entity.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	clone := *invoice
	f.s.invoices[invoice.ID] = &clone
	return nil
}

func (f *fakeInvoiceRepo) GetBySaleID(_ context.Context, saleID uuid.UUID) (*entity.Invoice, error) {
	for _, invoice := range f.s.invoices {
		if invoice.SaleID == saleID {
			clone := *invoice
			return &clone, nil
		}
	}
	return nil, nil
}

type fakeInvoiceJobRepo struct{ s *memStore }

func (f *fakeInvoiceJobRepo) Create(_ context.Context, job *entity.InvoiceJob) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	clone := *job
	f.s.jobs = append(f.s.jobs, &clone)
	return nil
}

func (f *fakeInvoiceJobRepo) GetPending(_ context.Context, limit int) ([]entity.InvoiceJob, error) {
	var out []entity.InvoiceJob
	for _, job := range f.s.jobs {
		if job.Status != enum.InvoiceJobStatusPending {
			continue
		}
		out = append(out, *job)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeInvoiceJobRepo) Update(_ context.Context, job *entity.InvoiceJob) error {
	for i, j := range f.s.jobs {
		if j.ID == job.ID {
			clone := *job
			f.s.jobs[i] = &clone
			return nil
		}
	}
	return nil
}

type fakeProductRepo struct{ s *memStore }

func (f *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	f.s.addProduct(product)
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	product, ok := f.s.products[id]
	if !ok {
		return nil, nil
	}
	clone := *product
	return &clone, nil
}

func (f *fakeProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if product, ok := f.s.products[id]; ok {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	clone := *product
	f.s.products[product.ID] = &clone
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.s.products, id)
	return nil
}

func (f *fakeProductRepo) List(_ context.Context, params *pagination.PaginationParams, _ string) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, product := range f.s.products {
		out = append(out, *product)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) AtomicDecrementBatch(_ context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	var failed []uuid.UUID
	for id, qty := range decrements {
		product, ok := f.s.products[id]
		if !ok || product.Stock < qty {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}
	for id, qty := range decrements {
		f.s.products[id].Stock -= qty
	}
	return nil, nil
}

func (f *fakeProductRepo) AtomicIncrementBatch(_ context.Context, increments map[uuid.UUID]int) error {
	for id, qty := range increments {
		if product, ok := f.s.products[id]; ok {
			product.Stock += qty
		}
	}
	return nil
}
