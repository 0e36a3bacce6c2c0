package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pymeflow/gestion-api/internal/application/service"
	"github.com/pymeflow/gestion-api/internal/domain/entity"
	"github.com/pymeflow/gestion-api/internal/domain/enum"
	"github.com/pymeflow/gestion-api/pkg/apperror"
)

type saleEnv struct {
	store *memStore
	svc   *service.SaleService
}

func newSaleEnv() *saleEnv {
	s := newMemStore()
	return &saleEnv{
		store: s,
		svc: service.NewSaleService(
			&fakeAtomic{},
			&fakeSaleRepo{s: s},
			&fakeSaleItemRepo{s: s},
			&fakeProductRepo{s: s},
			&fakeCustomerRepo{s: s},
			&fakeLedgerRepo{s: s},
		),
	}
}

func (e *saleEnv) seedCatalog() (*entity.Customer, *entity.Product) {
	customer := e.store.addCustomer(&entity.Customer{Name: "Almacen Sur"})
	product := e.store.addProduct(&entity.Product{
		Name:      "Yerba 1kg",
		SKU:       "YER-001",
		UnitPrice: decimal.NewFromInt(250),
		Stock:     50,
	})
	return customer, product
}

func TestCreateSale(t *testing.T) {
	env := newSaleEnv()
	customer, product := env.seedCatalog()

	sale, err := env.svc.CreateSale(context.Background(), &service.CreateSaleInput{
		CustomerID: customer.ID,
		Items: []service.SaleItemInput{{
			ProductID: product.ID,
			Quantity:  4,
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.SaleStatusDraft, sale.Status)
	assert.Equal(t, enum.CollectionStateUnpaid, sale.Collection)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(1000)))
	assert.True(t, sale.BalanceDue.Equal(sale.Total))
	require.Len(t, sale.Items, 1)
	assert.True(t, sale.Items[0].UnitPrice.Equal(decimal.NewFromInt(250)))

	// Stock is reserved on creation.
	assert.Equal(t, 46, env.store.products[product.ID].Stock)
	// A draft sale posts nothing to the ledger.
	assert.Empty(t, env.store.ledger)
}

func TestCreateSaleExplicitPriceOverridesCatalog(t *testing.T) {
	env := newSaleEnv()
	customer, product := env.seedCatalog()

	sale, err := env.svc.CreateSale(context.Background(), &service.CreateSaleInput{
		CustomerID: customer.ID,
		Items: []service.SaleItemInput{{
			ProductID: product.ID,
			Quantity:  2,
			UnitPrice: decimal.NewFromInt(300),
		}},
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(600)))
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	env := newSaleEnv()
	customer, product := env.seedCatalog()
	env.store.products[product.ID].Stock = 2

	_, err := env.svc.CreateSale(context.Background(), &service.CreateSaleInput{
		CustomerID: customer.ID,
		Items: []service.SaleItemInput{{
			ProductID: product.ID,
			Quantity:  5,
		}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")
	assert.Empty(t, env.store.sales)
	assert.Equal(t, 2, env.store.products[product.ID].Stock)
}

func TestCreateSaleUnknownProduct(t *testing.T) {
	env := newSaleEnv()
	customer, _ := env.seedCatalog()

	_, err := env.svc.CreateSale(context.Background(), &service.CreateSaleInput{
		CustomerID: customer.ID,
		Items: []service.SaleItemInput{{
			ProductID: uuid.New(),
			Quantity:  1,
		}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestConfirmSalePostsCharge(t *testing.T) {
	env := newSaleEnv()
	customer, product := env.seedCatalog()

	sale, err := env.svc.CreateSale(context.Background(), &service.CreateSaleInput{
		CustomerID: customer.ID,
		Items:      []service.SaleItemInput{{ProductID: product.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	confirmed, err := env.svc.ConfirmSale(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusConfirmed, confirmed.Status)

	entries := env.store.ledgerForCustomer(customer.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, enum.LedgerEntryTypeSaleCharge, entries[0].Type)
	assert.True(t, entries[0].Debit.Equal(decimal.NewFromInt(1000)))
	assert.True(t, entries[0].Balance.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, sale.ID, entries[0].DocumentID)
	assert.True(t, env.store.customers[customer.ID].RunningBalance.Equal(decimal.NewFromInt(1000)))
}

func TestConfirmSaleOnlyFromDraft(t *testing.T) {
	env := newSaleEnv()
	customer, product := env.seedCatalog()

	sale, err := env.svc.CreateSale(context.Background(), &service.CreateSaleInput{
		CustomerID: customer.ID,
		Items:      []service.SaleItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = env.svc.ConfirmSale(context.Background(), sale.ID)
	require.NoError(t, err)

	_, err = env.svc.ConfirmSale(context.Background(), sale.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	// The charge was not posted twice.
	assert.Len(t, env.store.ledgerForCustomer(customer.ID), 1)
}

func TestCancelDraftSaleReleasesStock(t *testing.T) {
	env := newSaleEnv()
	customer, product := env.seedCatalog()

	sale, err := env.svc.CreateSale(context.Background(), &service.CreateSaleInput{
		CustomerID: customer.ID,
		Items:      []service.SaleItemInput{{ProductID: product.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	require.Equal(t, 46, env.store.products[product.ID].Stock)

	cancelled, err := env.svc.CancelSale(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusCancelled, cancelled.Status)
	assert.Equal(t, 50, env.store.products[product.ID].Stock)
	assert.Empty(t, env.store.ledger)
}

func TestCancelConfirmedSaleReversesCharge(t *testing.T) {
	env := newSaleEnv()
	customer, product := env.seedCatalog()

	sale, err := env.svc.CreateSale(context.Background(), &service.CreateSaleInput{
		CustomerID: customer.ID,
		Items:      []service.SaleItemInput{{ProductID: product.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	_, err = env.svc.ConfirmSale(context.Background(), sale.ID)
	require.NoError(t, err)

	_, err = env.svc.CancelSale(context.Background(), sale.ID)
	require.NoError(t, err)

	entries := env.store.ledgerForCustomer(customer.ID)
	require.Len(t, entries, 2)
	assert.Equal(t, enum.LedgerEntryTypeAdjustment, entries[1].Type)
	assert.True(t, entries[1].Credit.Equal(decimal.NewFromInt(1000)))
	assert.True(t, entries[1].Balance.IsZero())
	assert.True(t, env.store.customers[customer.ID].RunningBalance.IsZero())
}

func TestCancelCollectedSaleRejected(t *testing.T) {
	env := newSaleEnv()
	customer, product := env.seedCatalog()

	sale, err := env.svc.CreateSale(context.Background(), &service.CreateSaleInput{
		CustomerID: customer.ID,
		Items:      []service.SaleItemInput{{ProductID: product.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	_, err = env.svc.ConfirmSale(context.Background(), sale.ID)
	require.NoError(t, err)

	stored := env.store.sales[sale.ID]
	stored.ApplyCollection(decimal.NewFromInt(200), stored.SaleDate)

	_, err = env.svc.CancelSale(context.Background(), sale.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "void the receipts first")
}
