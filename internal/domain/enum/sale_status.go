package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SaleStatus is the document lifecycle of a sale, independent of how
// much of it has been collected. Collected and Invoiced only apply to
// confirmed sales.
type SaleStatus int

const (
	SaleStatusDraft     SaleStatus = 0
	SaleStatusConfirmed SaleStatus = 1
	SaleStatusCollected SaleStatus = 2
	SaleStatusInvoiced  SaleStatus = 3
	SaleStatusCancelled SaleStatus = 4
)

func (s SaleStatus) String() string {
	names := [...]string{"Draft", "Confirmed", "Collected", "Invoiced", "Cancelled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Draft"
	}
	return names[s]
}

// Confirmed reports whether the sale has been confirmed (possibly later
// collected or invoiced).
func (s SaleStatus) Confirmed() bool {
	return s == SaleStatusConfirmed || s == SaleStatusCollected || s == SaleStatusInvoiced
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SaleStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = SaleStatusDraft
	case "Confirmed":
		*s = SaleStatusConfirmed
	case "Collected":
		*s = SaleStatusCollected
	case "Invoiced":
		*s = SaleStatusInvoiced
	case "Cancelled":
		*s = SaleStatusCancelled
	}
	return nil
}

func (s SaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SaleStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SaleStatus(v)
	case int:
		*s = SaleStatus(v)
	}
	return nil
}
