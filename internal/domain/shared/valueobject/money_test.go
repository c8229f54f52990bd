package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), BRL)
		require.NoError(t, err)
		assert.Equal(t, BRL, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", BRL)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", BRL)
		assert.Error(t, err)
	})
}

func TestMoney_Format(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"115", "R$ 115,00"},
		{"0", "R$ 0,00"},
		{"60.5", "R$ 60,50"},
		{"1234.56", "R$ 1.234,56"},
		{"1234567.891", "R$ 1.234.567,89"},
		{"999.999", "R$ 1.000,00"},
		{"-12.3", "R$ -12,30"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			m, err := NewMoneyFromString(tt.amount, BRL)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Format())
		})
	}

	t.Run("unknown currency falls back to code", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(10), "EUR")
		require.NoError(t, err)
		assert.Equal(t, "EUR 10,00", m.Format())
	})
}

func TestMoney_JSON(t *testing.T) {
	m := NewMoneyBRL(decimal.NewFromInt(150))
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"150.00","currency":"BRL"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"99.9"}`), &decoded))
	assert.Equal(t, BRL, decoded.Currency())
	assert.Equal(t, "R$ 99,90", decoded.Format())
}

func TestMoney_EqualsAndValue(t *testing.T) {
	a := NewMoneyBRL(decimal.RequireFromString("10.00"))
	b := NewMoneyBRL(decimal.NewFromInt(10))
	assert.True(t, a.Equals(b))
	assert.False(t, a.IsNegative())
	assert.Equal(t, "BRL 10.00", a.String())

	v, err := a.Value()
	require.NoError(t, err)
	assert.Equal(t, "10", v)
}
