package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod identifies one tender line's payment instrument.
// The set is closed: anything outside it must be rejected by validation
// before any write happens.
type PaymentMethod int

const (
	PaymentMethodCash          PaymentMethod = 0
	PaymentMethodTransfer      PaymentMethod = 1
	PaymentMethodCheck         PaymentMethod = 2
	PaymentMethodCard          PaymentMethod = 3
	PaymentMethodAccountCredit PaymentMethod = 4
)

// DefaultBank receives transfers, checks and card settlements when the
// tender does not name a bank.
const DefaultBank = "Banco Galicia"

func (m PaymentMethod) String() string {
	names := [...]string{"Cash", "Transfer", "Check", "Card", "AccountCredit"}
	if int(m) < 0 || int(m) >= len(names) {
		return "Unknown"
	}
	return names[m]
}

// Valid reports whether m is one of the closed set of payment methods.
func (m PaymentMethod) Valid() bool {
	return m >= PaymentMethodCash && m <= PaymentMethodAccountCredit
}

// MovesMoney reports whether the method represents physical money
// movement. Account-credit tenders are internal adjustments: they post
// no cash entry and no ledger entry.
func (m PaymentMethod) MovesMoney() bool {
	return m != PaymentMethodAccountCredit
}

// TreasuryAccount resolves the treasury account a tender settles into.
// bank overrides the default for transfers and checks when the customer
// paid into a specific bank.
func (m PaymentMethod) TreasuryAccount(bank string) string {
	switch m {
	case PaymentMethodCash:
		return "Caja"
	case PaymentMethodTransfer, PaymentMethodCheck:
		if bank != "" {
			return bank
		}
		return DefaultBank
	case PaymentMethodCard:
		return DefaultBank
	default:
		return ""
	}
}

// CashCategory resolves the cash-book category for a tender.
func (m PaymentMethod) CashCategory() string {
	if m == PaymentMethodCard {
		return "Cobranzas Tarjeta"
	}
	return "Cobranzas"
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	switch str {
	case "Cash":
		*m = PaymentMethodCash
	case "Transfer":
		*m = PaymentMethodTransfer
	case "Check":
		*m = PaymentMethodCheck
	case "Card":
		*m = PaymentMethodCard
	case "AccountCredit":
		*m = PaymentMethodAccountCredit
	default:
		*m = PaymentMethod(-1)
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
