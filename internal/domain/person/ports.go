package person

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, record Record) error
	GetByID(ctx context.Context, id int64) (Record, error)
	GetEmployee(ctx context.Context, id int64) (*Employee, error)
	Delete(ctx context.Context, id int64) error
}

// RecordSaver persists records produced by the CSV import, one row at a time.
type RecordSaver interface {
	Save(ctx context.Context, record Record) error
}

// PositionStore is the view of the position tables available inside a transaction.
type PositionStore interface {
	LockEmployee(ctx context.Context, employeeID int64) (*Employee, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]EmployeePosition, error)
	Create(ctx context.Context, position *EmployeePosition) error
	UpdateCurrentPosition(ctx context.Context, employee *Employee) error
}

type PositionRepository interface {
	RunInTx(ctx context.Context, fn func(store PositionStore) error) error
	GetByID(ctx context.Context, id int64) (*EmployeePosition, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]EmployeePosition, error)
	SetEndDate(ctx context.Context, id int64, endDate time.Time) error
	Delete(ctx context.Context, id int64) error
}
