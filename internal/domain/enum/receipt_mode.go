package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ReceiptMode is the explicit settlement variant of a receipt. A receipt
// either settles specific sales or regularizes the customer's account as
// a generic debt reduction; the branch is decided once, by validation,
// never inferred again downstream.
type ReceiptMode int

const (
	ReceiptModeRegularization ReceiptMode = 0
	ReceiptModeSaleCollection ReceiptMode = 1
)

func (m ReceiptMode) String() string {
	names := [...]string{"Regularization", "SaleCollection"}
	if int(m) < 0 || int(m) >= len(names) {
		return "Regularization"
	}
	return names[m]
}

func (m ReceiptMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *ReceiptMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = ReceiptMode(i)
		return nil
	}
	switch str {
	case "Regularization":
		*m = ReceiptModeRegularization
	case "SaleCollection":
		*m = ReceiptModeSaleCollection
	}
	return nil
}

func (m ReceiptMode) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *ReceiptMode) Scan(value interface{}) error {
	if value == nil {
		*m = ReceiptModeRegularization
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = ReceiptMode(v)
	case int:
		*m = ReceiptMode(v)
	}
	return nil
}
