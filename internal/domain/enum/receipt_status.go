package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ReceiptStatus is the lifecycle state of a receipt. The only transition
// is Active -> Void.
type ReceiptStatus int

const (
	ReceiptStatusActive ReceiptStatus = 0
	ReceiptStatusVoid   ReceiptStatus = 1
)

func (s ReceiptStatus) String() string {
	names := [...]string{"Active", "Void"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Active"
	}
	return names[s]
}

func (s ReceiptStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ReceiptStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ReceiptStatus(i)
		return nil
	}
	switch str {
	case "Active":
		*s = ReceiptStatusActive
	case "Void":
		*s = ReceiptStatusVoid
	}
	return nil
}

func (s ReceiptStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ReceiptStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ReceiptStatusActive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ReceiptStatus(v)
	case int:
		*s = ReceiptStatus(v)
	}
	return nil
}
