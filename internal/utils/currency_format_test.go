package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"999", "999.00"},
		{"1000", "1,000.00"},
		{"100000", "1,00,000.00"},
		{"848850", "8,48,850.00"},
		{"1011399.3", "10,11,399.30"},
		{"123456789.555", "12,34,56,789.56"},
		{"-1500", "-1,500.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatINR(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatWithPrecision(t *testing.T) {
	assert.Equal(t, "113.18", FormatWithPrecision(decimal.RequireFromString("113.1849"), 2))
}
