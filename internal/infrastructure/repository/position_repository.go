package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	domain "github.com/mohammadpnp/person-service/internal/domain/person"
	"github.com/mohammadpnp/person-service/internal/infrastructure/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PositionRepository struct {
	db *gorm.DB
}

func NewPositionRepository(db *gorm.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// RunInTx runs fn in a serializable transaction. A serialization failure is
// reported as a version conflict.
func (r *PositionRepository) RunInTx(ctx context.Context, fn func(store domain.PositionStore) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&positionStore{tx: tx})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil && isSerializationFailure(err) {
		return gerrors.Wrap(domain.ErrVersionConflict, "position transaction")
	}
	return err
}

func (r *PositionRepository) GetByID(ctx context.Context, id int64) (*domain.EmployeePosition, error) {
	var row models.EmployeePosition

	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPositionNotFound
		}
		return nil, gerrors.Wrap(err, "get position by id")
	}

	position := toPosition(row)
	return &position, nil
}

func (r *PositionRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]domain.EmployeePosition, error) {
	return listPositions(r.db.WithContext(ctx), employeeID)
}

func (r *PositionRepository) SetEndDate(ctx context.Context, id int64, endDate time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.EmployeePosition{}).
		Where("id = ?", id).
		Updates(map[string]any{"end_date": endDate, "updated_at": time.Now()})
	if result.Error != nil {
		return gerrors.Wrap(result.Error, "set position end date")
	}
	if result.RowsAffected == 0 {
		return domain.ErrPositionNotFound
	}
	return nil
}

func (r *PositionRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.EmployeePosition{}, "id = ?", id)
	if result.Error != nil {
		return gerrors.Wrap(result.Error, "delete position")
	}
	if result.RowsAffected == 0 {
		return domain.ErrPositionNotFound
	}
	return nil
}

type positionStore struct {
	tx *gorm.DB
}

func (s *positionStore) LockEmployee(ctx context.Context, employeeID int64) (*domain.Employee, error) {
	return findEmployee(s.tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), employeeID)
}

func (s *positionStore) ListByEmployee(ctx context.Context, employeeID int64) ([]domain.EmployeePosition, error) {
	return listPositions(s.tx.WithContext(ctx), employeeID)
}

func (s *positionStore) Create(ctx context.Context, position *domain.EmployeePosition) error {
	row := toPositionModel(*position)
	row.ID = 0

	if err := s.tx.WithContext(ctx).Create(&row).Error; err != nil {
		return gerrors.Wrap(err, "create position")
	}

	position.ID = row.ID
	return nil
}

// UpdateCurrentPosition writes the employee's current position and salary if
// the stored version still matches, then bumps the version.
func (s *positionStore) UpdateCurrentPosition(ctx context.Context, employee *domain.Employee) error {
	result := s.tx.WithContext(ctx).
		Model(&models.Person{}).
		Where("id = ? AND version = ?", employee.ID, employee.Version).
		Updates(map[string]any{
			"current_position_id": employee.CurrentPositionID,
			"current_salary":      employee.CurrentSalary,
			"version":             gorm.Expr("version + 1"),
			"updated_at":          time.Now(),
		})
	if result.Error != nil {
		return gerrors.Wrap(result.Error, "update current position")
	}
	if result.RowsAffected == 0 {
		return domain.ErrVersionConflict
	}

	employee.Version++
	return nil
}

func listPositions(db *gorm.DB, employeeID int64) ([]domain.EmployeePosition, error) {
	var rows []models.EmployeePosition

	err := db.Where("employee_id = ?", employeeID).Order("start_date ASC, id ASC").Find(&rows).Error
	if err != nil {
		return nil, gerrors.Wrap(err, "list positions")
	}

	positions := make([]domain.EmployeePosition, 0, len(rows))
	for _, row := range rows {
		positions = append(positions, toPosition(row))
	}
	return positions, nil
}
