package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCommissionAmount(t *testing.T) {
	cases := []struct {
		amount, pct, want string
	}{
		{"45.00", "40", "18.00"},
		{"100.00", "40", "40.00"},
		{"33.33", "40", "13.33"},
		{"10.01", "33.5", "3.35"},
		{"50.00", "0", "0.00"},
	}
	for _, tc := range cases {
		got := CommissionAmount(decimal.RequireFromString(tc.amount), decimal.RequireFromString(tc.pct))
		assert.Equal(t, tc.want, got.StringFixed(2), "%s at %s%%", tc.amount, tc.pct)
	}
}
