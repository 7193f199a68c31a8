package person

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmployeePosition struct {
	ID         int64
	EmployeeID int64
	PositionID int64
	StartDate  time.Time
	EndDate    *time.Time
	Salary     decimal.Decimal
}

func (p EmployeePosition) IsOpen() bool {
	return p.EndDate == nil
}

// ValidateNewPosition checks that a position starting at startDate can be appended
// to the employee's history. Every existing position must be closed, the new one
// must start after employment began and after every existing position ended.
func ValidateNewPosition(employee *Employee, existing []EmployeePosition, startDate time.Time) error {
	for _, p := range existing {
		if p.IsOpen() {
			return &IllegalEmploymentDateError{
				Reason: "Not all existing employee's positions have an end date. " +
					"To add new position all previous must be over.",
			}
		}
	}

	if !startDate.After(employee.EmploymentStartDate) {
		return &IllegalEmploymentDateError{
			Reason: "Start date of the new position cannot be before employee's employment start date: " +
				employee.EmploymentStartDate.Format(DateLayout),
		}
	}

	for _, p := range existing {
		if !startDate.After(*p.EndDate) {
			return &IllegalEmploymentDateError{Reason: "New position overlaps with an existing one."}
		}
	}

	return nil
}
