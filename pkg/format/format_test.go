package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1500.50", "$1,500.50"},
		{"1234567.8", "$1,234,567.80"},
		{"0", "$0.00"},
		{"999", "$999.00"},
	}
	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.in)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, Currency(d))
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1500.5", "1,500.5"},
		{"2500", "2,500"},
		{"12.34", "12.34"},
		{"0", "0"},
	}
	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.in)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, Amount(d))
	}
}

func TestDate(t *testing.T) {
	assert.Equal(t, "05/01/2026", Date(time.Date(2026, 1, 5, 23, 59, 0, 0, time.UTC)))
}

func TestMaskAccount(t *testing.T) {
	assert.Equal(t, "1234...5678", MaskAccount("123456789012345678"))
	assert.Equal(t, "1000...0010", MaskAccount("100000001000000010"))
	// Too short to mask meaningfully
	assert.Equal(t, "1234567", MaskAccount("1234567"))
	assert.Equal(t, "", MaskAccount(""))
}
