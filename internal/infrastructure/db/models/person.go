package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Person is a row of the people table. Every person type shares the table and
// the Type column tells them apart.
type Person struct {
	ID                  int64               `gorm:"primaryKey"`
	Type                string              `gorm:"size:31;not null;index"`
	TypeID              int64               `gorm:"not null"`
	FirstName           string              `gorm:"size:255;not null"`
	LastName            string              `gorm:"size:255;not null"`
	Pesel               string              `gorm:"size:11;not null;uniqueIndex:UC_PERSON_PESEL"`
	Height              int                 `gorm:"not null"`
	Weight              int                 `gorm:"not null"`
	Email               string              `gorm:"size:320;not null"`
	Version             int64               `gorm:"not null;default:0"`
	EmploymentStartDate *time.Time          `gorm:"type:date"`
	CurrentPositionID   *int64
	CurrentSalary       decimal.NullDecimal `gorm:"type:numeric(19,2)"`
	UniversityID        *int64
	EnrollmentYear      *int
	FieldOfStudyID      *int64
	Scholarship         decimal.NullDecimal `gorm:"type:numeric(19,2)"`
	Pension             decimal.NullDecimal `gorm:"type:numeric(19,2)"`
	YearsWorked         *int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (Person) TableName() string {
	return "people"
}
