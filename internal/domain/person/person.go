package person

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used on the wire and in CSV files.
const DateLayout = "2006-01-02"

var nationalIDPattern = regexp.MustCompile(`^\d{11}$`)

type Kind string

const (
	KindStudent  Kind = "student"
	KindEmployee Kind = "employee"
	KindRetiree  Kind = "retiree"
)

func ParseKind(raw string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(raw)))
	switch kind {
	case KindStudent, KindEmployee, KindRetiree:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
	}
}

// Person holds the fields every variant shares.
type Person struct {
	ID         int64
	TypeID     int64
	FirstName  string
	LastName   string
	NationalID string
	Height     int
	Weight     int
	Email      string
	Version    int64
}

// Record is implemented by Student, Employee and Retiree only.
type Record interface {
	Kind() Kind
	Common() *Person
	isRecord()
}

type Student struct {
	Person
	UniversityID   int64
	EnrollmentYear int
	FieldOfStudyID int64
	Scholarship    decimal.Decimal
}

func (s *Student) Kind() Kind      { return KindStudent }
func (s *Student) Common() *Person { return &s.Person }
func (*Student) isRecord()         {}

type Employee struct {
	Person
	EmploymentStartDate time.Time
	CurrentPositionID   int64
	CurrentSalary       decimal.Decimal
}

func (e *Employee) Kind() Kind      { return KindEmployee }
func (e *Employee) Common() *Person { return &e.Person }
func (*Employee) isRecord()         {}

type Retiree struct {
	Person
	Pension     decimal.Decimal
	YearsWorked int
}

func (r *Retiree) Kind() Kind      { return KindRetiree }
func (r *Retiree) Common() *Person { return &r.Person }
func (*Retiree) isRecord()         {}

// Validate checks the shared fields of a record before it is persisted.
func Validate(r Record) error {
	p := r.Common()
	if !lettersOnly(p.FirstName) || !lettersOnly(p.LastName) {
		return ErrInvalidName
	}
	if !nationalIDPattern.MatchString(p.NationalID) {
		return ErrInvalidNationalID
	}
	if p.Height <= 0 || p.Weight <= 0 {
		return ErrInvalidMeasurement
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func ParseDate(raw string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(raw))
}

func lettersOnly(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
