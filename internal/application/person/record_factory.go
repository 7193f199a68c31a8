package person

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mohammadpnp/person-service/internal/domain/dictionary"
	domain "github.com/mohammadpnp/person-service/internal/domain/person"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Column layout of an import row. The first seven columns are shared by every
// person type.
const (
	colType = iota
	colFirstName
	colLastName
	colNationalID
	colHeight
	colWeight
	colEmail
	colVariant
)

var csvWidths = map[domain.Kind]int{
	domain.KindEmployee: 10,
	domain.KindStudent:  11,
	domain.KindRetiree:  9,
}

// CreatePersonCommand is the API representation of a new person.
type CreatePersonCommand struct {
	Type      string `json:"type" validate:"required"`
	FirstName string `json:"firstName" validate:"required,lettersonly"`
	LastName  string `json:"lastName" validate:"required,lettersonly"`
	Pesel     string `json:"pesel" validate:"required,pesel"`
	Height    int    `json:"height" validate:"gt=0"`
	Weight    int    `json:"weight" validate:"gt=0"`
	Email     string `json:"email" validate:"required,email"`

	EmploymentStartDate string           `json:"employmentStartDate,omitempty"`
	CurrentPositionID   int64            `json:"currentPositionId,omitempty"`
	CurrentSalary       *decimal.Decimal `json:"currentSalary,omitempty"`

	UniversityNameID int64            `json:"universityNameId,omitempty"`
	EnrollmentYear   int              `json:"enrollmentYear,omitempty"`
	FieldOfStudyID   int64            `json:"fieldOfStudyId,omitempty"`
	Scholarship      *decimal.Decimal `json:"scholarship,omitempty"`

	Pension     *decimal.Decimal `json:"pension,omitempty"`
	YearsOfWork int              `json:"yearsOfWork,omitempty"`
}

// RecordFactory builds person records from import rows and API commands.
type RecordFactory struct {
	resolver dictionary.Resolver
	dicts    dictionary.IDs
}

func NewRecordFactory(resolver dictionary.Resolver, dicts dictionary.IDs) *RecordFactory {
	return &RecordFactory{resolver: resolver, dicts: dicts}
}

// WithResolver returns a factory that resolves dictionary references through r.
func (f *RecordFactory) WithResolver(r dictionary.Resolver) *RecordFactory {
	return &RecordFactory{resolver: r, dicts: f.dicts}
}

// FromCSV builds a record from the comma separated fields of one import row.
func (f *RecordFactory) FromCSV(ctx context.Context, fields []string) (domain.Record, error) {
	fields = dropTrailingEmpty(fields)
	if len(fields) == 0 {
		return nil, errors.New("row has no fields")
	}

	kind, err := domain.ParseKind(fields[colType])
	if err != nil {
		return nil, err
	}
	if want := csvWidths[kind]; len(fields) != want {
		return nil, fmt.Errorf("%s row must have %d fields, got %d", kind, want, len(fields))
	}

	common, err := parseCommonFields(fields)
	if err != nil {
		return nil, err
	}

	variant := fields[colVariant:]
	var (
		record domain.Record
		refs   []dictionaryRef
	)

	switch kind {
	case domain.KindEmployee:
		start, err := parseDateField("employmentStartDate", variant[0])
		if err != nil {
			return nil, err
		}
		salary, err := parseDecimalField("salary", variant[2])
		if err != nil {
			return nil, err
		}
		employee := &domain.Employee{Person: common, EmploymentStartDate: start, CurrentSalary: salary}
		refs = append(refs, byName("position", f.dicts.Position, variant[1], &employee.CurrentPositionID))
		record = employee
	case domain.KindStudent:
		year, err := parseIntField("enrollmentYear", variant[1])
		if err != nil {
			return nil, err
		}
		scholarship, err := parseDecimalField("scholarship", variant[3])
		if err != nil {
			return nil, err
		}
		student := &domain.Student{Person: common, EnrollmentYear: year, Scholarship: scholarship}
		refs = append(refs,
			byName("university", f.dicts.University, variant[0], &student.UniversityID),
			byName("field of study", f.dicts.FieldOfStudy, variant[2], &student.FieldOfStudyID),
		)
		record = student
	case domain.KindRetiree:
		pension, err := parseDecimalField("pension", variant[0])
		if err != nil {
			return nil, err
		}
		years, err := parseIntField("yearsWorked", variant[1])
		if err != nil {
			return nil, err
		}
		record = &domain.Retiree{Person: common, Pension: pension, YearsWorked: years}
	}

	return f.complete(ctx, record, refs)
}

// FromCommand builds a record from a validated API command.
func (f *RecordFactory) FromCommand(ctx context.Context, cmd CreatePersonCommand) (domain.Record, error) {
	if err := validateStruct(cmd); err != nil {
		return nil, err
	}

	kind, err := domain.ParseKind(cmd.Type)
	if err != nil {
		return nil, err
	}

	common := domain.Person{
		FirstName:  strings.TrimSpace(cmd.FirstName),
		LastName:   strings.TrimSpace(cmd.LastName),
		NationalID: strings.TrimSpace(cmd.Pesel),
		Height:     cmd.Height,
		Weight:     cmd.Weight,
		Email:      strings.TrimSpace(cmd.Email),
	}

	var (
		record domain.Record
		refs   []dictionaryRef
	)

	switch kind {
	case domain.KindEmployee:
		start, err := domain.ParseDate(cmd.EmploymentStartDate)
		if err != nil {
			return nil, err
		}
		employee := &domain.Employee{Person: common, EmploymentStartDate: start, CurrentSalary: *cmd.CurrentSalary}
		refs = append(refs, byID("position", cmd.CurrentPositionID, &employee.CurrentPositionID))
		record = employee
	case domain.KindStudent:
		student := &domain.Student{Person: common, EnrollmentYear: cmd.EnrollmentYear, Scholarship: *cmd.Scholarship}
		refs = append(refs,
			byID("university", cmd.UniversityNameID, &student.UniversityID),
			byID("field of study", cmd.FieldOfStudyID, &student.FieldOfStudyID),
		)
		record = student
	case domain.KindRetiree:
		record = &domain.Retiree{Person: common, Pension: *cmd.Pension, YearsWorked: cmd.YearsOfWork}
	}

	return f.complete(ctx, record, refs)
}

func (f *RecordFactory) complete(ctx context.Context, record domain.Record, refs []dictionaryRef) (domain.Record, error) {
	if err := domain.Validate(record); err != nil {
		return nil, err
	}

	refs = append(refs, byName("type", f.dicts.Type, string(record.Kind()), &record.Common().TypeID))
	if err := resolveAll(ctx, f.resolver, refs); err != nil {
		return nil, err
	}
	return record, nil
}

// dictionaryRef is one dictionary reference of a record. The resolved id is
// written to target.
type dictionaryRef struct {
	label        string
	dictionaryID int64
	name         string
	id           int64
	lookupByID   bool
	target       *int64
}

func byName(label string, dictionaryID int64, name string, target *int64) dictionaryRef {
	return dictionaryRef{
		label:        label,
		dictionaryID: dictionaryID,
		name:         strings.ToLower(strings.TrimSpace(name)),
		target:       target,
	}
}

func byID(label string, id int64, target *int64) dictionaryRef {
	return dictionaryRef{label: label, id: id, lookupByID: true, target: target}
}

// resolveAll looks up every reference concurrently and fails on the first miss.
func resolveAll(ctx context.Context, resolver dictionary.Resolver, refs []dictionaryRef) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, ref := range refs {
		g.Go(func() error {
			var (
				value dictionary.Value
				err   error
			)
			if ref.lookupByID {
				value, err = resolver.ResolveByID(gctx, ref.id)
			} else {
				value, err = resolver.ResolveByDictionaryAndName(gctx, ref.dictionaryID, ref.name)
			}
			if err != nil {
				return fmt.Errorf("resolve %s: %w", ref.label, err)
			}
			*ref.target = value.ID
			return nil
		})
	}
	return g.Wait()
}

// memoResolver remembers name lookups for the lifetime of one import run.
type memoResolver struct {
	next dictionary.Resolver

	mu     sync.Mutex
	byName map[memoKey]dictionary.Value
}

type memoKey struct {
	dictionaryID int64
	name         string
}

func newMemoResolver(next dictionary.Resolver) *memoResolver {
	return &memoResolver{next: next, byName: make(map[memoKey]dictionary.Value)}
}

func (m *memoResolver) ResolveByID(ctx context.Context, id int64) (dictionary.Value, error) {
	return m.next.ResolveByID(ctx, id)
}

func (m *memoResolver) ResolveByDictionaryAndName(ctx context.Context, dictionaryID int64, name string) (dictionary.Value, error) {
	key := memoKey{dictionaryID: dictionaryID, name: name}

	m.mu.Lock()
	value, ok := m.byName[key]
	m.mu.Unlock()
	if ok {
		return value, nil
	}

	value, err := m.next.ResolveByDictionaryAndName(ctx, dictionaryID, name)
	if err != nil {
		return dictionary.Value{}, err
	}

	m.mu.Lock()
	m.byName[key] = value
	m.mu.Unlock()
	return value, nil
}

func parseCommonFields(fields []string) (domain.Person, error) {
	height, err := parseIntField("height", fields[colHeight])
	if err != nil {
		return domain.Person{}, err
	}
	weight, err := parseIntField("weight", fields[colWeight])
	if err != nil {
		return domain.Person{}, err
	}

	return domain.Person{
		FirstName:  strings.TrimSpace(fields[colFirstName]),
		LastName:   strings.TrimSpace(fields[colLastName]),
		NationalID: strings.TrimSpace(fields[colNationalID]),
		Height:     height,
		Weight:     weight,
		Email:      strings.TrimSpace(fields[colEmail]),
	}, nil
}

func parseIntField(name, raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("field %s: invalid number %q", name, raw)
	}
	return value, nil
}

func parseDecimalField(name, raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("field %s: invalid amount %q", name, raw)
	}
	return value, nil
}

func parseDateField(name, raw string) (time.Time, error) {
	value, err := domain.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("field %s: invalid date %q, expected %s", name, raw, domain.DateLayout)
	}
	return value, nil
}

func dropTrailingEmpty(fields []string) []string {
	end := len(fields)
	for end > 0 && fields[end-1] == "" {
		end--
	}
	return fields[:end]
}
