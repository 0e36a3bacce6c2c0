package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pymeflow/gestion-api/internal/domain/entity"
	"github.com/pymeflow/gestion-api/internal/domain/enum"
)

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

func TestAllocateSingleSaleExact(t *testing.T) {
	sale := confirmedSale("VTA-1", 1000)

	allocations, err := allocate([]*entity.Sale{sale}, decimal.NewFromInt(1000), time.Now())
	require.NoError(t, err)
	require.Len(t, allocations, 1)

	a := allocations[0]
	assert.True(t, a.BalanceBefore.Equal(decimal.NewFromInt(1000)))
	assert.True(t, a.AmountApplied.Equal(decimal.NewFromInt(1000)))
	assert.True(t, a.BalanceAfter.IsZero())

	assert.True(t, sale.BalanceDue.IsZero())
	assert.Equal(t, enum.CollectionStateSettled, sale.Collection)
	assert.Equal(t, enum.SaleStatusCollected, sale.Status)
}

func TestAllocatePartial(t *testing.T) {
	sale := confirmedSale("VTA-1", 1000)

	allocations, err := allocate([]*entity.Sale{sale}, decimal.NewFromInt(600), time.Now())
	require.NoError(t, err)
	require.Len(t, allocations, 1)

	assert.True(t, allocations[0].AmountApplied.Equal(decimal.NewFromInt(600)))
	assert.True(t, allocations[0].BalanceAfter.Equal(decimal.NewFromInt(400)))
	assert.True(t, sale.BalanceDue.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, enum.CollectionStatePartial, sale.Collection)
	assert.Equal(t, enum.SaleStatusConfirmed, sale.Status)
}

func TestAllocateOrderedWaterfall(t *testing.T) {
	first := confirmedSale("VTA-1", 300)
	second := confirmedSale("VTA-2", 500)

	allocations, err := allocate([]*entity.Sale{first, second}, decimal.NewFromInt(700), time.Now())
	require.NoError(t, err)
	require.Len(t, allocations, 2)

	assert.True(t, allocations[0].AmountApplied.Equal(decimal.NewFromInt(300)))
	assert.True(t, allocations[0].BalanceAfter.IsZero())
	assert.True(t, allocations[1].AmountApplied.Equal(decimal.NewFromInt(400)))
	assert.True(t, allocations[1].BalanceAfter.Equal(decimal.NewFromInt(100)))

	assert.Equal(t, enum.CollectionStateSettled, first.Collection)
	assert.Equal(t, enum.CollectionStatePartial, second.Collection)
	assert.True(t, second.BalanceDue.Equal(decimal.NewFromInt(100)))
}

func TestAllocateLeavesLaterSalesUntouched(t *testing.T) {
	first := confirmedSale("VTA-1", 500)
	second := confirmedSale("VTA-2", 500)

	allocations, err := allocate([]*entity.Sale{first, second}, decimal.NewFromInt(500), time.Now())
	require.NoError(t, err)
	require.Len(t, allocations, 1)

	assert.True(t, second.BalanceDue.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, enum.CollectionStateUnpaid, second.Collection)
	assert.True(t, second.AmountCollected.IsZero())
}

func TestAllocateRejectsSettledSale(t *testing.T) {
	settled := confirmedSale("VTA-1", 1000)
	settled.ApplyCollection(decimal.NewFromInt(1000), time.Now())
	next := confirmedSale("VTA-2", 200)

	_, err := allocate([]*entity.Sale{settled, next}, decimal.NewFromInt(100), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no outstanding balance")

	// Nothing past the failing sale was touched either.
	assert.True(t, next.AmountCollected.IsZero())
}

func TestAllocateOverpaymentSettlesEverything(t *testing.T) {
	sale := confirmedSale("VTA-1", 800)

	allocations, err := allocate([]*entity.Sale{sale}, decimal.NewFromInt(1000), time.Now())
	require.NoError(t, err)
	require.Len(t, allocations, 1)

	// The allocation never exceeds the sale's balance; the caller turns
	// the surplus into change.
	assert.True(t, allocations[0].AmountApplied.Equal(decimal.NewFromInt(800)))
	assert.True(t, sale.BalanceDue.IsZero())
	assert.True(t, sale.AmountCollected.Equal(sale.Total))
}
