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

func newCashEnv() (*memStore, *service.CashService) {
	s := newMemStore()
	return s, service.NewCashService(&fakeCashRepo{s: s})
}

func TestCreateManualCashEntry(t *testing.T) {
	_, svc := newCashEnv()

	entry, err := svc.CreateEntry(context.Background(), &service.CashEntryInput{
		Account:     "Caja",
		Category:    "Gastos",
		Method:      enum.PaymentMethodCash,
		Direction:   enum.CashDirectionOutflow,
		Amount:      decimal.NewFromInt(150),
		Description: "Libreria",
	})
	require.NoError(t, err)
	assert.False(t, entry.Locked())
	assert.Equal(t, enum.CashDirectionOutflow, entry.Direction)
}

func TestCreateManualCashEntryValidation(t *testing.T) {
	_, svc := newCashEnv()

	tests := []struct {
		name  string
		input *service.CashEntryInput
	}{
		{"missing account", &service.CashEntryInput{Method: enum.PaymentMethodCash, Amount: decimal.NewFromInt(10)}},
		{"zero amount", &service.CashEntryInput{Account: "Caja", Method: enum.PaymentMethodCash}},
		{"account credit moves no money", &service.CashEntryInput{Account: "Caja", Method: enum.PaymentMethodAccountCredit, Amount: decimal.NewFromInt(10)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateEntry(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
		})
	}
}

func TestReceiptCashEntriesAreLocked(t *testing.T) {
	store, svc := newCashEnv()

	receiptID := uuid.New()
	locked := &entity.CashEntry{
		ID:            uuid.New(),
		Account:       "Caja",
		Category:      "Cobranzas",
		PaymentMethod: enum.PaymentMethodCash,
		Direction:     enum.CashDirectionInflow,
		Amount:        decimal.NewFromInt(500),
		ReceiptID:     &receiptID,
	}
	store.cash = append(store.cash, locked)

	_, err := svc.UpdateEntry(context.Background(), locked.ID, &service.CashEntryInput{
		Account:   "Banco Galicia",
		Method:    enum.PaymentMethodCash,
		Direction: enum.CashDirectionInflow,
		Amount:    decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	err = svc.DeleteEntry(context.Background(), locked.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	// The entry is untouched.
	assert.True(t, store.cash[0].Amount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "Caja", store.cash[0].Account)
}
