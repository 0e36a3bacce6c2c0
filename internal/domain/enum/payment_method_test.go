package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethodTreasuryRouting(t *testing.T) {
	tests := []struct {
		name         string
		method       PaymentMethod
		bank         string
		wantAccount  string
		wantCategory string
	}{
		{"cash goes to the drawer", PaymentMethodCash, "", "Caja", "Cobranzas"},
		{"cash ignores bank hint", PaymentMethodCash, "Banco Nacion", "Caja", "Cobranzas"},
		{"transfer to named bank", PaymentMethodTransfer, "Banco Nacion", "Banco Nacion", "Cobranzas"},
		{"transfer defaults bank", PaymentMethodTransfer, "", DefaultBank, "Cobranzas"},
		{"check to named bank", PaymentMethodCheck, "Banco Macro", "Banco Macro", "Cobranzas"},
		{"check defaults bank", PaymentMethodCheck, "", DefaultBank, "Cobranzas"},
		{"card always default bank", PaymentMethodCard, "Banco Nacion", DefaultBank, "Cobranzas Tarjeta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantAccount, tt.method.TreasuryAccount(tt.bank))
			assert.Equal(t, tt.wantCategory, tt.method.CashCategory())
		})
	}
}

func TestPaymentMethodMovesMoney(t *testing.T) {
	assert.True(t, PaymentMethodCash.MovesMoney())
	assert.True(t, PaymentMethodTransfer.MovesMoney())
	assert.True(t, PaymentMethodCheck.MovesMoney())
	assert.True(t, PaymentMethodCard.MovesMoney())
	assert.False(t, PaymentMethodAccountCredit.MovesMoney())
}

func TestPaymentMethodClosedSet(t *testing.T) {
	for m := PaymentMethodCash; m <= PaymentMethodAccountCredit; m++ {
		assert.True(t, m.Valid(), m.String())
	}
	assert.False(t, PaymentMethod(-1).Valid())
	assert.False(t, PaymentMethod(5).Valid())
}

func TestPaymentMethodJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(PaymentMethodTransfer)
	require.NoError(t, err)
	assert.Equal(t, `"Transfer"`, string(data))

	var m PaymentMethod
	require.NoError(t, json.Unmarshal([]byte(`"Check"`), &m))
	assert.Equal(t, PaymentMethodCheck, m)

	// Unknown names decode to an invalid value the validator rejects.
	require.NoError(t, json.Unmarshal([]byte(`"Crypto"`), &m))
	assert.False(t, m.Valid())
}
