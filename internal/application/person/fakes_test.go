package person_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	app "github.com/mohammadpnp/person-service/internal/application/person"
	"github.com/mohammadpnp/person-service/internal/domain/dictionary"
	domain "github.com/mohammadpnp/person-service/internal/domain/person"
)

const csvHeader = "type,firstName,lastName,pesel,height,weight,email,col8,col9,col10,col11"

const (
	employeeRow = "Employee,Jan,Kowalski,90010112345,180,80,jan@example.com,2020-01-15,Manager,5000.00"
	studentRow  = "student,Anna,Nowak,95020254321,165,55,anna@example.com,UW,2019,Informatics,1200.50"
	retireeRow  = "retiree,Piotr,Zielinski,45030398765,170,75,piotr@example.com,3200.00,40"
)

type fakeResolver struct {
	mu        sync.Mutex
	values    []dictionary.Value
	err       error
	idCalls   int
	nameCalls int
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{values: []dictionary.Value{
		{DictionaryID: 1, ID: 11, Name: "student"},
		{DictionaryID: 1, ID: 12, Name: "employee"},
		{DictionaryID: 1, ID: 13, Name: "retiree"},
		{DictionaryID: 2, ID: 21, Name: "manager"},
		{DictionaryID: 2, ID: 22, Name: "developer"},
		{DictionaryID: 3, ID: 31, Name: "uw"},
		{DictionaryID: 4, ID: 41, Name: "informatics"},
	}}
}

func (f *fakeResolver) ResolveByID(ctx context.Context, id int64) (dictionary.Value, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.idCalls++
	if f.err != nil {
		return dictionary.Value{}, f.err
	}
	for _, v := range f.values {
		if v.ID == id {
			return v, nil
		}
	}
	return dictionary.Value{}, fmt.Errorf("value %d: %w", id, dictionary.ErrValueNotFound)
}

func (f *fakeResolver) ResolveByDictionaryAndName(ctx context.Context, dictionaryID int64, name string) (dictionary.Value, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nameCalls++
	if f.err != nil {
		return dictionary.Value{}, f.err
	}
	for _, v := range f.values {
		if v.DictionaryID == dictionaryID && v.Name == name {
			return v, nil
		}
	}
	return dictionary.Value{}, fmt.Errorf("value %q in dictionary %d: %w", name, dictionaryID, dictionary.ErrValueNotFound)
}

func (f *fakeResolver) calls() (byID, byName int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.idCalls, f.nameCalls
}

type fakeSaver struct {
	mu      sync.Mutex
	saved   []domain.Record
	failAt  int
	block   chan struct{}
	onSave  func()
	nextErr error
}

func (s *fakeSaver) Save(ctx context.Context, record domain.Record) error {
	if s.block != nil {
		<-s.block
	}
	if s.onSave != nil {
		s.onSave()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAt > 0 && len(s.saved)+1 == s.failAt {
		return errors.New("connection reset")
	}
	for _, r := range s.saved {
		if r.Common().NationalID == record.Common().NationalID {
			return fmt.Errorf("insert person: %w", domain.ErrDuplicateNationalID)
		}
	}
	s.saved = append(s.saved, record)
	return nil
}

func (s *fakeSaver) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

type fakePeople struct {
	records   map[int64]domain.Record
	createErr error
	nextID    int64
}

func newFakePeople(records ...domain.Record) *fakePeople {
	f := &fakePeople{records: make(map[int64]domain.Record), nextID: 100}
	for _, r := range records {
		f.records[r.Common().ID] = r
	}
	return f
}

func (f *fakePeople) Create(ctx context.Context, record domain.Record) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	record.Common().ID = f.nextID
	f.records[f.nextID] = record
	return nil
}

func (f *fakePeople) GetByID(ctx context.Context, id int64) (domain.Record, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, domain.ErrPersonNotFound
	}
	return r, nil
}

func (f *fakePeople) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	e, ok := r.(*domain.Employee)
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakePeople) Delete(ctx context.Context, id int64) error {
	if _, ok := f.records[id]; !ok {
		return domain.ErrPersonNotFound
	}
	delete(f.records, id)
	return nil
}

// fakePositions keeps positions in memory. RunInTx serializes callers and
// discards writes of a failed transaction.
type fakePositions struct {
	mu        sync.Mutex
	people    *fakePeople
	positions []domain.EmployeePosition
	nextID    int64
	updateErr error
}

func (f *fakePositions) RunInTx(ctx context.Context, fn func(store domain.PositionStore) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tx := &fakePositionTx{parent: f, positions: append([]domain.EmployeePosition(nil), f.positions...), nextID: f.nextID}
	if err := fn(tx); err != nil {
		return err
	}
	f.positions = tx.positions
	f.nextID = tx.nextID
	if tx.employee != nil {
		current := f.people.records[tx.employee.ID].(*domain.Employee)
		current.CurrentPositionID = tx.employee.CurrentPositionID
		current.CurrentSalary = tx.employee.CurrentSalary
		current.Version++
	}
	return nil
}

func (f *fakePositions) GetByID(ctx context.Context, id int64) (*domain.EmployeePosition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.positions {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrPositionNotFound
}

func (f *fakePositions) ListByEmployee(ctx context.Context, employeeID int64) ([]domain.EmployeePosition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return filterPositions(f.positions, employeeID), nil
}

func (f *fakePositions) SetEndDate(ctx context.Context, id int64, endDate time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.positions {
		if f.positions[i].ID == id {
			end := endDate
			f.positions[i].EndDate = &end
			return nil
		}
	}
	return domain.ErrPositionNotFound
}

func (f *fakePositions) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.positions {
		if f.positions[i].ID == id {
			f.positions = append(f.positions[:i], f.positions[i+1:]...)
			return nil
		}
	}
	return domain.ErrPositionNotFound
}

type fakePositionTx struct {
	parent    *fakePositions
	positions []domain.EmployeePosition
	nextID    int64
	employee  *domain.Employee
}

func (tx *fakePositionTx) LockEmployee(ctx context.Context, employeeID int64) (*domain.Employee, error) {
	e, err := tx.parent.people.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	copied := *e
	return &copied, nil
}

func (tx *fakePositionTx) ListByEmployee(ctx context.Context, employeeID int64) ([]domain.EmployeePosition, error) {
	return filterPositions(tx.positions, employeeID), nil
}

func (tx *fakePositionTx) Create(ctx context.Context, position *domain.EmployeePosition) error {
	tx.nextID++
	position.ID = tx.nextID
	tx.positions = append(tx.positions, *position)
	return nil
}

func (tx *fakePositionTx) UpdateCurrentPosition(ctx context.Context, employee *domain.Employee) error {
	if tx.parent.updateErr != nil {
		return tx.parent.updateErr
	}
	tx.employee = employee
	return nil
}

func filterPositions(all []domain.EmployeePosition, employeeID int64) []domain.EmployeePosition {
	var out []domain.EmployeePosition
	for _, p := range all {
		if p.EmployeeID == employeeID {
			out = append(out, p)
		}
	}
	return out
}

type countingObserver struct {
	mu       sync.Mutex
	rows     int
	outcomes []string
}

func (o *countingObserver) RowImported() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rows++
}

func (o *countingObserver) RunFinished(outcome string, elapsed time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func newFactory(resolver dictionary.Resolver) *app.RecordFactory {
	return app.NewRecordFactory(resolver, dictionary.DefaultIDs())
}
