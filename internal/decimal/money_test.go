package decimal_test

import (
	"testing"

	dec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturino/tax-engine/internal/decimal"
)

func TestFromInt(t *testing.T) {
	d := decimal.FromInt(100)
	assert.True(t, d.Equal(dec.NewFromInt(100)))
}

func TestFromFloat(t *testing.T) {
	// Rounding policy is half-up, applied uniformly
	d := decimal.FromFloat(100.555)
	assert.True(t, d.Equal(dec.NewFromFloat(100.56)))

	d = decimal.FromFloat(100.554)
	assert.True(t, d.Equal(dec.NewFromFloat(100.55)))
}

func TestFromString(t *testing.T) {
	d, err := decimal.FromString("123456.78")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec.RequireFromString("123456.78")))

	_, err = decimal.FromString("not-a-number")
	require.Error(t, err)
}

func TestMustFromString(t *testing.T) {
	d := decimal.MustFromString("999.99")
	assert.True(t, d.Equal(dec.RequireFromString("999.99")))

	assert.Panics(t, func() {
		decimal.MustFromString("invalid")
	})
}

func TestFromStringOrZero(t *testing.T) {
	assert.True(t, decimal.FromStringOrZero("12.50").Equal(dec.RequireFromString("12.50")))
	assert.True(t, decimal.FromStringOrZero("").IsZero())
	assert.True(t, decimal.FromStringOrZero("garbage").IsZero())
}

func TestMul(t *testing.T) {
	a := dec.NewFromInt(100)
	b := dec.NewFromFloat(0.19)
	result := decimal.Mul(a, b)
	assert.True(t, result.Equal(dec.NewFromInt(19)))
}

func TestDiv(t *testing.T) {
	a := dec.NewFromInt(100)
	b := dec.NewFromInt(3)
	result := decimal.Div(a, b)
	assert.True(t, result.Equal(dec.RequireFromString("33.33")))

	// Division by zero returns zero
	result = decimal.Div(a, dec.Zero)
	assert.True(t, result.IsZero())
}

func TestSum(t *testing.T) {
	values := []dec.Decimal{
		dec.NewFromInt(100),
		dec.NewFromInt(200),
		dec.NewFromInt(300),
	}
	result := decimal.Sum(values)
	assert.True(t, result.Equal(dec.NewFromInt(600)))
}

func TestSum_Empty(t *testing.T) {
	result := decimal.Sum([]dec.Decimal{})
	assert.True(t, result.IsZero())
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name   string
		a, b   string
		within bool
	}{
		{"equal", "119.00", "119.00", true},
		{"one cent apart", "119.00", "119.01", true},
		{"one cent under", "119.00", "118.99", true},
		{"two cents apart", "119.00", "119.02", false},
		{"large mismatch", "100.00", "119.00", false},
		{"sub-cent difference", "119.004", "119.00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := dec.RequireFromString(tt.a)
			b := dec.RequireFromString(tt.b)
			assert.Equal(t, tt.within, decimal.WithinTolerance(a, b))
			assert.Equal(t, tt.within, decimal.WithinTolerance(b, a))
		})
	}
}

func TestIsPositive(t *testing.T) {
	assert.True(t, decimal.IsPositive(dec.NewFromInt(1)))
	assert.False(t, decimal.IsPositive(dec.Zero))
	assert.False(t, decimal.IsPositive(dec.NewFromInt(-1)))
}

func TestIsNonNegative(t *testing.T) {
	assert.True(t, decimal.IsNonNegative(dec.NewFromInt(1)))
	assert.True(t, decimal.IsNonNegative(dec.Zero))
	assert.False(t, decimal.IsNonNegative(dec.NewFromInt(-1)))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"integer", "119", "119.00"},
		{"one decimal", "119.5", "119.50"},
		{"two decimals", "119.55", "119.55"},
		{"rounds half up", "119.555", "119.56"},
		{"rounds down", "119.554", "119.55"},
		{"zero", "0", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := dec.RequireFromString(tt.input)
			assert.Equal(t, tt.expected, decimal.Format(d))
		})
	}
}
