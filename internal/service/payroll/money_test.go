package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputePay_SemimonthlyPeriod(t *testing.T) {
	// 3000.00 monthly -> 100.00/day; Jan 1-15 inclusive is 15 days.
	gross, deductions, net := computePay(decimal.RequireFromString("3000.00"), date(2024, time.January, 1), date(2024, time.January, 15))

	assert.True(t, gross.Equal(decimal.RequireFromString("1500.00")), "gross = %s", gross)
	assert.True(t, deductions.Equal(decimal.RequireFromString("180.00")), "deductions = %s", deductions)
	assert.True(t, net.Equal(decimal.RequireFromString("1320.00")), "net = %s", net)
}

func TestComputePay_FullMonth(t *testing.T) {
	gross, _, _ := computePay(decimal.RequireFromString("3000.00"), date(2024, time.March, 1), date(2024, time.March, 30))

	assert.True(t, gross.Equal(decimal.RequireFromString("3000.00")), "gross = %s", gross)
}

func TestComputePay_SingleDay(t *testing.T) {
	gross, deductions, net := computePay(decimal.RequireFromString("3000.00"), date(2024, time.June, 10), date(2024, time.June, 10))

	assert.True(t, gross.Equal(decimal.RequireFromString("100.00")), "gross = %s", gross)
	assert.True(t, net.Equal(gross.Sub(deductions)))
}

func TestComputePay_RoundingInvariant(t *testing.T) {
	// An awkward amount forces rounding on every figure; the identity must
	// still hold exactly.
	amounts := []string{"3333.33", "1234.56", "999.99", "0.01", "7777.77"}
	for _, a := range amounts {
		gross, deductions, net := computePay(decimal.RequireFromString(a), date(2024, time.February, 1), date(2024, time.February, 17))

		assert.True(t, net.Equal(gross.Sub(deductions)), "amount %s: %s != %s - %s", a, net, gross, deductions)
		assert.True(t, gross.Exponent() >= -2, "gross has more than 2dp: %s", gross)
		assert.True(t, deductions.Exponent() >= -2, "deductions has more than 2dp: %s", deductions)
	}
}

func TestInclusiveDays(t *testing.T) {
	assert.Equal(t, int64(1), inclusiveDays(date(2024, time.January, 1), date(2024, time.January, 1)))
	assert.Equal(t, int64(15), inclusiveDays(date(2024, time.January, 1), date(2024, time.January, 15)))
	assert.Equal(t, int64(31), inclusiveDays(date(2024, time.January, 1), date(2024, time.January, 31)))
}
