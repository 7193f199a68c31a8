package person

import "errors"

var (
	ErrUnknownKind         = errors.New("unknown person type")
	ErrInvalidName         = errors.New("invalid name")
	ErrInvalidNationalID   = errors.New("invalid national id")
	ErrInvalidMeasurement  = errors.New("invalid height or weight")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrPersonNotFound      = errors.New("person not found")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrPositionNotFound    = errors.New("employee position not found")
	ErrDuplicateNationalID = errors.New("duplicate national id")
	ErrVersionConflict     = errors.New("version conflict")

	ErrIllegalEmploymentDate = errors.New("illegal employment date")
)

// UniqueNationalIDConstraint is the database constraint guarding national id uniqueness.
const UniqueNationalIDConstraint = "UC_PERSON_PESEL"

// IllegalEmploymentDateError carries the user-facing reason a position was rejected.
type IllegalEmploymentDateError struct {
	Reason string
}

func (e *IllegalEmploymentDateError) Error() string {
	return e.Reason
}

func (e *IllegalEmploymentDateError) Is(target error) bool {
	return target == ErrIllegalEmploymentDate
}
