package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmployeePosition struct {
	ID         int64           `gorm:"primaryKey"`
	EmployeeID int64           `gorm:"not null;index"`
	PositionID int64           `gorm:"not null"`
	StartDate  time.Time       `gorm:"type:date;not null"`
	EndDate    *time.Time      `gorm:"type:date"`
	Salary     decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (EmployeePosition) TableName() string {
	return "employee_positions"
}
