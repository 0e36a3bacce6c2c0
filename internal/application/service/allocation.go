package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pymeflow/gestion-api/internal/domain/entity"
	"github.com/pymeflow/gestion-api/pkg/apperror"
)

// allocate distributes a collected amount across sales in the order
// they were given. Each sale absorbs up to its outstanding balance;
// whatever remains flows to the next one. Sales are mutated in place
// so the caller can persist them inside the same transaction.
//
// A sale with nothing left to collect cannot be part of a collection,
// so hitting one aborts the whole operation before any money moved.
func allocate(sales []*entity.Sale, amount decimal.Decimal, at time.Time) ([]entity.ReceiptAllocation, error) {
	remaining := amount
	allocations := make([]entity.ReceiptAllocation, 0, len(sales))

	for _, sale := range sales {
		if !remaining.IsPositive() {
			break
		}
		if !sale.BalanceDue.IsPositive() {
			return nil, apperror.NewValidationError(
				fmt.Sprintf("sale %s has no outstanding balance", sale.Number))
		}

		applied := decimal.Min(sale.BalanceDue, remaining)
		allocation := entity.ReceiptAllocation{
			SaleID:        sale.ID,
			SaleNumber:    sale.Number,
			SaleTotal:     sale.Total,
			BalanceBefore: sale.BalanceDue,
			AmountApplied: applied,
			BalanceAfter:  sale.BalanceDue.Sub(applied),
		}

		sale.ApplyCollection(applied, at)
		remaining = remaining.Sub(applied)
		allocations = append(allocations, allocation)
	}

	return allocations, nil
}
