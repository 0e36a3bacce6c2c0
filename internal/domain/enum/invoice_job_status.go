package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceJobStatus is the state of an auto-invoicing outbox row.
type InvoiceJobStatus int

const (
	InvoiceJobStatusPending InvoiceJobStatus = 0
	InvoiceJobStatusDone    InvoiceJobStatus = 1
	InvoiceJobStatusFailed  InvoiceJobStatus = 2
)

func (s InvoiceJobStatus) String() string {
	names := [...]string{"Pending", "Done", "Failed"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

func (s InvoiceJobStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceJobStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceJobStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = InvoiceJobStatusPending
	case "Done":
		*s = InvoiceJobStatusDone
	case "Failed":
		*s = InvoiceJobStatusFailed
	}
	return nil
}

func (s InvoiceJobStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceJobStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceJobStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceJobStatus(v)
	case int:
		*s = InvoiceJobStatus(v)
	}
	return nil
}
