package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pay computation uses a 360-day commercial year: a monthly salary maps to a
// daily rate of amount * 12 / 360, and gross pay is the daily rate times the
// inclusive day count of the period. A monthly salary of 3000.00 over a
// 15-day semimonthly period therefore grosses 1500.00.
var (
	monthsPerYear = decimal.NewFromInt(12)
	daysPerYear   = decimal.NewFromInt(360)
	deductionRate = decimal.NewFromFloat(0.12)
)

// computePay derives gross, deductions and net for one employee over one pay
// period. All three figures are rounded to two decimal places (half up), and
// net is computed from the rounded figures so gross - deductions == net holds
// exactly.
func computePay(monthlyAmount decimal.Decimal, periodStart, periodEnd time.Time) (gross, deductions, net decimal.Decimal) {
	days := inclusiveDays(periodStart, periodEnd)
	dailyRate := monthlyAmount.Mul(monthsPerYear).Div(daysPerYear)

	gross = dailyRate.Mul(decimal.NewFromInt(days)).Round(2)
	deductions = gross.Mul(deductionRate).Round(2)
	net = gross.Sub(deductions)
	return gross, deductions, net
}

func inclusiveDays(start, end time.Time) int64 {
	s := start.Truncate(24 * time.Hour)
	e := end.Truncate(24 * time.Hour)
	return int64(e.Sub(s).Hours()/24) + 1
}
