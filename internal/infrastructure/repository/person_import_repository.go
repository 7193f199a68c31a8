package repository

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	domain "github.com/mohammadpnp/person-service/internal/domain/person"
)

// PersonImportRepository stores imported rows one at a time, each in its own
// implicit transaction, so rows written before a failing row stay committed.
type PersonImportRepository struct {
	pool *pgxpool.Pool
}

func NewPersonImportRepository(pool *pgxpool.Pool) *PersonImportRepository {
	return &PersonImportRepository{pool: pool}
}

func (r *PersonImportRepository) Save(ctx context.Context, record domain.Record) error {
	row := toPersonModel(record)

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO people (
    type, type_id, first_name, last_name, pesel, height, weight, email,
    employment_start_date, current_position_id, current_salary,
    university_id, enrollment_year, field_of_study_id, scholarship,
    pension, years_worked, created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8,
    $9, $10, $11,
    $12, $13, $14, $15,
    $16, $17, NOW(), NOW()
)
RETURNING id
`,
		row.Type, row.TypeID, row.FirstName, row.LastName, row.Pesel, row.Height, row.Weight, row.Email,
		row.EmploymentStartDate, row.CurrentPositionID, row.CurrentSalary,
		row.UniversityID, row.EnrollmentYear, row.FieldOfStudyID, row.Scholarship,
		row.Pension, row.YearsWorked,
	).Scan(&id)
	if err != nil {
		if isUniqueNationalIDViolation(err) {
			return gerrors.Wrap(domain.ErrDuplicateNationalID, "insert person")
		}
		return gerrors.Wrap(err, "insert person")
	}

	record.Common().ID = id
	return nil
}
