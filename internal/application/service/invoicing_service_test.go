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
)

type invoicingEnv struct {
	store *memStore
	svc   *service.InvoicingService
}

func newInvoicingEnvWithBatch(batchSize int) *invoicingEnv {
	s := newMemStore()
	return &invoicingEnv{
		store: s,
		svc: service.NewInvoicingService(
			&fakeAtomic{},
			&fakeInvoiceJobRepo{s: s},
			&fakeInvoiceRepo{s: s},
			&fakeSaleRepo{s: s},
			batchSize,
		),
	}
}

func newInvoicingEnv() *invoicingEnv {
	return newInvoicingEnvWithBatch(10)
}

func (e *invoicingEnv) seedCollectedSale(total int64) (*entity.Sale, *entity.InvoiceJob) {
	customer := e.store.addCustomer(&entity.Customer{Name: "Almacen Sur"})
	sale := confirmedSale("VTA-X", total)
	sale.CustomerID = customer.ID
	sale.ApplyCollection(decimal.NewFromInt(total), sale.SaleDate)
	e.store.addSale(sale)

	job := &entity.InvoiceJob{
		ID:         uuid.New(),
		SaleID:     sale.ID,
		CustomerID: customer.ID,
		ReceiptID:  uuid.New(),
		Status:     enum.InvoiceJobStatusPending,
	}
	clone := *job
	e.store.jobs = append(e.store.jobs, &clone)
	return sale, job
}

func TestProcessPendingCreatesDraftInvoice(t *testing.T) {
	env := newInvoicingEnv()
	sale, _ := env.seedCollectedSale(1000)

	done, err := env.svc.ProcessPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, done)

	require.Len(t, env.store.invoices, 1)
	var invoice *entity.Invoice
	for _, inv := range env.store.invoices {
		invoice = inv
	}
	assert.Equal(t, sale.ID, invoice.SaleID)
	assert.True(t, invoice.Amount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, invoice.Draft)

	stored := env.store.sales[sale.ID]
	require.NotNil(t, stored.InvoiceID)
	assert.Equal(t, invoice.ID, *stored.InvoiceID)
	assert.Equal(t, enum.SaleStatusInvoiced, stored.Status)

	assert.Equal(t, enum.InvoiceJobStatusDone, env.store.jobs[0].Status)
	assert.Equal(t, 1, env.store.jobs[0].Attempts)
}

func TestProcessPendingSkipsAlreadyInvoicedSale(t *testing.T) {
	env := newInvoicingEnv()
	sale, _ := env.seedCollectedSale(1000)
	existing := uuid.New()
	env.store.sales[sale.ID].InvoiceID = &existing

	done, err := env.svc.ProcessPending(context.Background())
	require.NoError(t, err)

	// An already invoiced sale counts as success without a new invoice.
	assert.Equal(t, 1, done)
	assert.Empty(t, env.store.invoices)
	assert.Equal(t, enum.InvoiceJobStatusDone, env.store.jobs[0].Status)
}

func TestProcessPendingReusesExistingInvoice(t *testing.T) {
	env := newInvoicingEnv()
	sale, _ := env.seedCollectedSale(1000)

	// A prior attempt drafted the invoice but never linked the sale.
	existing := &entity.Invoice{
		ID:         uuid.New(),
		Number:     "FC-20260901-0001",
		SaleID:     sale.ID,
		CustomerID: sale.CustomerID,
		Amount:     decimal.NewFromInt(1000),
		Draft:      true,
	}
	env.store.invoices[existing.ID] = existing

	done, err := env.svc.ProcessPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, done)

	assert.Len(t, env.store.invoices, 1)
	stored := env.store.sales[sale.ID]
	require.NotNil(t, stored.InvoiceID)
	assert.Equal(t, existing.ID, *stored.InvoiceID)
	assert.Equal(t, enum.SaleStatusInvoiced, stored.Status)
	assert.Equal(t, enum.InvoiceJobStatusDone, env.store.jobs[0].Status)
}

func TestProcessPendingRecordsFailure(t *testing.T) {
	env := newInvoicingEnv()
	_, job := env.seedCollectedSale(1000)
	// The sale disappearing underneath the job is a per-job failure.
	delete(env.store.sales, job.SaleID)
	_, other := env.seedCollectedSale(500)

	done, err := env.svc.ProcessPending(context.Background())
	require.NoError(t, err)

	// The broken job does not stop the batch.
	assert.Equal(t, 1, done)

	var failed, succeeded *entity.InvoiceJob
	for _, j := range env.store.jobs {
		switch j.ID {
		case job.ID:
			failed = j
		case other.ID:
			succeeded = j
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, enum.InvoiceJobStatusFailed, failed.Status)
	require.NotNil(t, failed.LastError)
	assert.Contains(t, *failed.LastError, "not found")

	require.NotNil(t, succeeded)
	assert.Equal(t, enum.InvoiceJobStatusDone, succeeded.Status)
}

func TestProcessPendingHonorsBatchSize(t *testing.T) {
	env := newInvoicingEnvWithBatch(2)
	for i := 0; i < 3; i++ {
		env.seedCollectedSale(100)
	}

	done, err := env.svc.ProcessPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, done)

	done, err = env.svc.ProcessPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, done)
}
