package costbasis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_String(t *testing.T) {
	tests := []struct {
		name string
		in   Money
		want string
	}{
		{"negative", USD(-5.00), "-$5.00"},
		{"positive", USD(5.00), "$5.00"},
		{"zero", USD(0), "$0.00"},
		{"no currency", M(0, ""), "$0.00"},
		{"zero value", Money{}, "$0.00"},
		{"thousands", USD(1234567.891), "$1,234,567.89"},
		{"rounded up", USD(2.005), "$2.01"},
		{"tiny negative", USD(-0.004), "$0.00"},
		{"negative thousands", USD(-1234.5), "-$1,234.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.String())
		})
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want Money
	}{
		{"1234.5", USD(1234.5)},
		{"$1,234.50", USD(1234.5)},
		{"-$5", USD(-5)},
		{"$-5", USD(-5)},
		{"(12.30)", USD(-12.3)},
		{" 0 ", USD(0)},
	}
	for _, tt := range tests {
		got, err := ParseMoney(tt.in, "USD")
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "ParseMoney(%q) = %v, want %v", tt.in, got, tt.want)
	}

	for _, in := range []string{"", "$", "abc", "1.2.3"} {
		_, err := ParseMoney(in, "USD")
		assert.Error(t, err, "ParseMoney(%q)", in)
	}
}

func TestMoney_WeakCurrency(t *testing.T) {
	var total Money
	total = total.Add(USD(10)).Add(USD(2.5))
	assert.Equal(t, "USD", total.Currency())
	assert.True(t, total.Equal(USD(12.5)))
	assert.Panics(t, func() { USD(1).Add(M(1, "EUR")) })
}

func TestMoney_Ratio(t *testing.T) {
	assert.InDelta(t, 1.5, USD(150).Ratio(USD(100)), 1e-9)
	assert.Zero(t, USD(150).Ratio(USD(0)))
}

func TestPercent_String(t *testing.T) {
	assert.Equal(t, "12.346%", Percent(12.3456).String())
	assert.Equal(t, "-3.000%", Percent(-3).String())
}
