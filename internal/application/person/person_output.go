package person

import (
	domain "github.com/mohammadpnp/person-service/internal/domain/person"
	"github.com/shopspring/decimal"
)

type PersonOutput struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	TypeID    int64  `json:"typeId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Pesel     string `json:"pesel"`
	Height    int    `json:"height"`
	Weight    int    `json:"weight"`
	Email     string `json:"email"`
	Version   int64  `json:"version"`

	EmploymentStartDate string           `json:"employmentStartDate,omitempty"`
	CurrentPositionID   int64            `json:"currentPositionId,omitempty"`
	CurrentSalary       *decimal.Decimal `json:"currentSalary,omitempty"`

	UniversityNameID int64            `json:"universityNameId,omitempty"`
	EnrollmentYear   int              `json:"enrollmentYear,omitempty"`
	FieldOfStudyID   int64            `json:"fieldOfStudyId,omitempty"`
	Scholarship      *decimal.Decimal `json:"scholarship,omitempty"`

	Pension     *decimal.Decimal `json:"pension,omitempty"`
	YearsOfWork *int             `json:"yearsOfWork,omitempty"`
}

func toPersonOutput(record domain.Record) PersonOutput {
	p := record.Common()
	out := PersonOutput{
		ID:        p.ID,
		Type:      string(record.Kind()),
		TypeID:    p.TypeID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Pesel:     p.NationalID,
		Height:    p.Height,
		Weight:    p.Weight,
		Email:     p.Email,
		Version:   p.Version,
	}

	switch r := record.(type) {
	case *domain.Employee:
		out.EmploymentStartDate = r.EmploymentStartDate.Format(domain.DateLayout)
		out.CurrentPositionID = r.CurrentPositionID
		out.CurrentSalary = &r.CurrentSalary
	case *domain.Student:
		out.UniversityNameID = r.UniversityID
		out.EnrollmentYear = r.EnrollmentYear
		out.FieldOfStudyID = r.FieldOfStudyID
		out.Scholarship = &r.Scholarship
	case *domain.Retiree:
		out.Pension = &r.Pension
		out.YearsOfWork = &r.YearsWorked
	}
	return out
}
