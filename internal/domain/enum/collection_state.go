package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CollectionState tracks how much of a sale has been collected.
type CollectionState int

const (
	CollectionStateUnpaid  CollectionState = 0
	CollectionStatePartial CollectionState = 1
	CollectionStateSettled CollectionState = 2
)

func (s CollectionState) String() string {
	names := [...]string{"Unpaid", "Partial", "Settled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Unpaid"
	}
	return names[s]
}

func (s CollectionState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *CollectionState) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = CollectionState(i)
		return nil
	}
	switch str {
	case "Unpaid":
		*s = CollectionStateUnpaid
	case "Partial":
		*s = CollectionStatePartial
	case "Settled":
		*s = CollectionStateSettled
	}
	return nil
}

func (s CollectionState) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *CollectionState) Scan(value interface{}) error {
	if value == nil {
		*s = CollectionStateUnpaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = CollectionState(v)
	case int:
		*s = CollectionState(v)
	}
	return nil
}
