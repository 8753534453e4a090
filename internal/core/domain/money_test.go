package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tallybook/internal/core/domain"
)

func TestNewMoney_ScaleValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"integer", "100", false},
		{"one decimal place", "100.5", false},
		{"two decimal places", "100.55", false},
		{"three decimal places", "100.555", true},
		{"negative two places", "-42.01", false},
		{"sub-cent", "0.001", true},
		{"zero", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := domain.NewMoneyFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.True(t, m.Decimal().Equal(decimal.RequireFromString(tt.input)))
		})
	}
}

func TestNewNonNegativeMoney_RejectsNegative(t *testing.T) {
	_, err := domain.NewNonNegativeMoney(decimal.NewFromInt(-1))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	m, err := domain.NewNonNegativeMoney(decimal.Zero)
	require.NoError(t, err)
	assert.True(t, m.IsZero())
}

func TestMoney_ArithmeticIsExact(t *testing.T) {
	a, err := domain.NewMoneyFromString("0.10")
	require.NoError(t, err)
	b, err := domain.NewMoneyFromString("0.20")
	require.NoError(t, err)

	sum := a.Add(b)
	expected, err := domain.NewMoneyFromString("0.30")
	require.NoError(t, err)

	// 0.1 + 0.2 == 0.3 exactly, which would not hold for floats.
	assert.True(t, sum.Equal(expected))
	assert.Equal(t, "0.30", sum.String())

	diff := sum.Sub(b)
	assert.True(t, diff.Equal(a))

	neg := a.Neg()
	assert.True(t, neg.IsNegative())
	assert.True(t, neg.Add(a).IsZero())
}

func TestMoney_Comparisons(t *testing.T) {
	small, _ := domain.NewMoneyFromString("1.00")
	large, _ := domain.NewMoneyFromString("2.00")

	assert.Equal(t, -1, small.Cmp(large))
	assert.Equal(t, 1, large.Cmp(small))
	assert.Equal(t, 0, small.Cmp(small))
	assert.True(t, large.IsPositive())
	assert.False(t, large.IsZero())
	assert.True(t, domain.ZeroMoney().IsZero())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m, err := domain.NewMoneyFromString("1234.50")
	require.NoError(t, err)

	data, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1234.50"`, string(data))

	var parsed domain.Money
	require.NoError(t, parsed.UnmarshalJSON(data))
	assert.True(t, parsed.Equal(m))

	var tooPrecise domain.Money
	err = tooPrecise.UnmarshalJSON([]byte(`"1.999"`))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}
