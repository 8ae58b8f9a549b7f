package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Salary is one compensation row of an employee. Amount is a monthly salary.
// At most one row per employee carries IsCurrent at any time; the flag is
// flipped transactionally on create and update.
type Salary struct {
	ID               string
	EmployeeSubjectID string
	Amount           decimal.Decimal
	EffectiveDate    time.Time
	IsCurrent        bool
	CreatedAt        time.Time
}
