package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CashDirection is the direction of a treasury movement.
type CashDirection int

const (
	CashDirectionInflow  CashDirection = 0
	CashDirectionOutflow CashDirection = 1
)

func (d CashDirection) String() string {
	names := [...]string{"Inflow", "Outflow"}
	if int(d) < 0 || int(d) >= len(names) {
		return "Inflow"
	}
	return names[d]
}

func (d CashDirection) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *CashDirection) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*d = CashDirection(i)
		return nil
	}
	switch str {
	case "Inflow":
		*d = CashDirectionInflow
	case "Outflow":
		*d = CashDirectionOutflow
	}
	return nil
}

func (d CashDirection) Value() (driver.Value, error) {
	return int64(d), nil
}

func (d *CashDirection) Scan(value interface{}) error {
	if value == nil {
		*d = CashDirectionInflow
		return nil
	}
	switch v := value.(type) {
	case int64:
		*d = CashDirection(v)
	case int:
		*d = CashDirection(v)
	}
	return nil
}
