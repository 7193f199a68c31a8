package repository

import (
	"fmt"

	domain "github.com/mohammadpnp/person-service/internal/domain/person"
	"github.com/mohammadpnp/person-service/internal/infrastructure/db/models"
	"github.com/shopspring/decimal"
)

func toPersonModel(record domain.Record) models.Person {
	p := record.Common()
	row := models.Person{
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
		start := r.EmploymentStartDate
		positionID := r.CurrentPositionID
		row.EmploymentStartDate = &start
		row.CurrentPositionID = &positionID
		row.CurrentSalary = decimal.NewNullDecimal(r.CurrentSalary)
	case *domain.Student:
		universityID := r.UniversityID
		year := r.EnrollmentYear
		fieldID := r.FieldOfStudyID
		row.UniversityID = &universityID
		row.EnrollmentYear = &year
		row.FieldOfStudyID = &fieldID
		row.Scholarship = decimal.NewNullDecimal(r.Scholarship)
	case *domain.Retiree:
		years := r.YearsWorked
		row.Pension = decimal.NewNullDecimal(r.Pension)
		row.YearsWorked = &years
	}
	return row
}

func toRecord(row models.Person) (domain.Record, error) {
	common := domain.Person{
		ID:         row.ID,
		TypeID:     row.TypeID,
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		NationalID: row.Pesel,
		Height:     row.Height,
		Weight:     row.Weight,
		Email:      row.Email,
		Version:    row.Version,
	}

	switch domain.Kind(row.Type) {
	case domain.KindEmployee:
		return toEmployee(row, common), nil
	case domain.KindStudent:
		return &domain.Student{
			Person:         common,
			UniversityID:   derefInt64(row.UniversityID),
			EnrollmentYear: derefInt(row.EnrollmentYear),
			FieldOfStudyID: derefInt64(row.FieldOfStudyID),
			Scholarship:    row.Scholarship.Decimal,
		}, nil
	case domain.KindRetiree:
		return &domain.Retiree{
			Person:      common,
			Pension:     row.Pension.Decimal,
			YearsWorked: derefInt(row.YearsWorked),
		}, nil
	default:
		return nil, fmt.Errorf("person %d: %w: %q", row.ID, domain.ErrUnknownKind, row.Type)
	}
}

func toEmployee(row models.Person, common domain.Person) *domain.Employee {
	employee := &domain.Employee{
		Person:            common,
		CurrentPositionID: derefInt64(row.CurrentPositionID),
		CurrentSalary:     row.CurrentSalary.Decimal,
	}
	if row.EmploymentStartDate != nil {
		employee.EmploymentStartDate = *row.EmploymentStartDate
	}
	return employee
}

func toPositionModel(p domain.EmployeePosition) models.EmployeePosition {
	return models.EmployeePosition{
		ID:         p.ID,
		EmployeeID: p.EmployeeID,
		PositionID: p.PositionID,
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
		Salary:     p.Salary,
	}
}

func toPosition(row models.EmployeePosition) domain.EmployeePosition {
	return domain.EmployeePosition{
		ID:         row.ID,
		EmployeeID: row.EmployeeID,
		PositionID: row.PositionID,
		StartDate:  row.StartDate,
		EndDate:    row.EndDate,
		Salary:     row.Salary,
	}
}

func derefInt64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
