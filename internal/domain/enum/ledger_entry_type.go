package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// LedgerEntryType classifies an entry in a customer's account ledger.
// Charges debit the account (debt grows), receipts credit it, and
// adjustments may do either.
type LedgerEntryType int

const (
	LedgerEntryTypeSaleCharge LedgerEntryType = 0
	LedgerEntryTypeReceipt    LedgerEntryType = 1
	LedgerEntryTypeAdjustment LedgerEntryType = 2
)

func (t LedgerEntryType) String() string {
	names := [...]string{"SaleCharge", "Receipt", "Adjustment"}
	if int(t) < 0 || int(t) >= len(names) {
		return "Adjustment"
	}
	return names[t]
}

func (t LedgerEntryType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *LedgerEntryType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = LedgerEntryType(i)
		return nil
	}
	switch str {
	case "SaleCharge":
		*t = LedgerEntryTypeSaleCharge
	case "Receipt":
		*t = LedgerEntryTypeReceipt
	case "Adjustment":
		*t = LedgerEntryTypeAdjustment
	}
	return nil
}

func (t LedgerEntryType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *LedgerEntryType) Scan(value interface{}) error {
	if value == nil {
		*t = LedgerEntryTypeAdjustment
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = LedgerEntryType(v)
	case int:
		*t = LedgerEntryType(v)
	}
	return nil
}
