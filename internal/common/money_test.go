package common

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "zero", in: "0", want: "$0.00"},
		{name: "small", in: "12.5", want: "$12.50"},
		{name: "thousands", in: "50000", want: "$50,000.00"},
		{name: "rounds to cents", in: "1234567.891", want: "$1,234,567.89"},
		{name: "exact beyond float precision", in: "123456789012345678.99", want: "$123,456,789,012,345,678.99"},
		{name: "half cent rounds up", in: "0.125", want: "$0.13"},
		{name: "exact thousand", in: "1000", want: "$1,000.00"},
		{name: "negative", in: "-2500.5", want: "-$2,500.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatWhole(t *testing.T) {
	assert.Equal(t, "50,000", FormatWhole(decimal.NewFromInt(50000)))
	assert.Equal(t, "1,000", FormatWhole(decimal.RequireFromString("999.6")))
}
