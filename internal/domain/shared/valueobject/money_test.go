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
		m, err := NewMoney(decimal.NewFromFloat(100.50), USD)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyUSD(t *testing.T) {
	m := NewMoneyUSD(decimal.NewFromFloat(50.00))
	assert.Equal(t, USD, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(50.00)))
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", USD)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", USD)
		assert.Error(t, err)
	})
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds same currency amounts", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(10.25)
		b := NewMoneyUSDFromFloat(5.75)
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromFloat(16.00)))
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(10)
		b := Zero(VES)
		_, err := a.Add(b)
		assert.Error(t, err)
	})
}

func TestMoneySubtract(t *testing.T) {
	a := NewMoneyUSDFromFloat(10)
	b := NewMoneyUSDFromFloat(4)
	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(6)))

	_, err = a.Subtract(Zero(EUR))
	assert.Error(t, err)
}

func TestMoneyMultiplyAndRound(t *testing.T) {
	price := NewMoneyUSDFromFloat(5.00)
	gross := price.Multiply(decimal.NewFromInt(3))
	assert.True(t, gross.Amount().Equal(decimal.NewFromInt(15)))

	third := NewMoneyUSDFromFloat(10).Multiply(decimal.NewFromFloat(0.3333))
	assert.True(t, third.Round(2).Amount().Equal(decimal.NewFromFloat(3.33)))
}

func TestMoneyConvert(t *testing.T) {
	t.Run("converts at positive rate", func(t *testing.T) {
		usd := NewMoneyUSDFromFloat(10)
		ves, err := usd.Convert(decimal.NewFromFloat(36.5), VES)
		require.NoError(t, err)
		assert.Equal(t, VES, ves.Currency())
		assert.True(t, ves.Amount().Equal(decimal.NewFromFloat(365)))
	})

	t.Run("rejects non-positive rate", func(t *testing.T) {
		_, err := NewMoneyUSDFromFloat(10).Convert(decimal.Zero, VES)
		assert.Error(t, err)
	})
}

func TestMoneyComparisons(t *testing.T) {
	small := NewMoneyUSDFromFloat(5)
	big := NewMoneyUSDFromFloat(20)

	less, err := small.LessThan(big)
	require.NoError(t, err)
	assert.True(t, less)

	greater, err := big.GreaterThan(small)
	require.NoError(t, err)
	assert.True(t, greater)

	_, err = small.LessThan(Zero(VES))
	assert.Error(t, err)

	assert.True(t, small.Equals(NewMoneyUSDFromFloat(5)))
	assert.False(t, small.Equals(big))
}

func TestMoneySigns(t *testing.T) {
	assert.True(t, ZeroUSD().IsZero())
	assert.True(t, NewMoneyUSDFromFloat(1).IsPositive())
	assert.True(t, NewMoneyUSDFromFloat(1).Negate().IsNegative())
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := NewMoneyUSDFromFloat(42.75)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "12.50 USD", NewMoneyUSDFromFloat(12.5).String())
}
