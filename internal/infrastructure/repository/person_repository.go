package repository

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	domain "github.com/mohammadpnp/person-service/internal/domain/person"
	"github.com/mohammadpnp/person-service/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type PersonRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

func (r *PersonRepository) Create(ctx context.Context, record domain.Record) error {
	row := toPersonModel(record)
	row.ID = 0
	row.Version = 0

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueNationalIDViolation(err) {
			return gerrors.Wrap(domain.ErrDuplicateNationalID, "create person")
		}
		return gerrors.Wrap(err, "create person")
	}

	record.Common().ID = row.ID
	record.Common().Version = row.Version
	return nil
}

func (r *PersonRepository) GetByID(ctx context.Context, id int64) (domain.Record, error) {
	var row models.Person

	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPersonNotFound
		}
		return nil, gerrors.Wrap(err, "get person by id")
	}

	return toRecord(row)
}

func (r *PersonRepository) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	return findEmployee(r.db.WithContext(ctx), id)
}

func (r *PersonRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Person{}, "id = ?", id)
	if result.Error != nil {
		return gerrors.Wrap(result.Error, "delete person")
	}
	if result.RowsAffected == 0 {
		return domain.ErrPersonNotFound
	}
	return nil
}

func findEmployee(db *gorm.DB, id int64) (*domain.Employee, error) {
	var row models.Person

	err := db.First(&row, "id = ? AND type = ?", id, string(domain.KindEmployee)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, gerrors.Wrap(err, "get employee by id")
	}

	return toEmployee(row, domain.Person{
		ID:         row.ID,
		TypeID:     row.TypeID,
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		NationalID: row.Pesel,
		Height:     row.Height,
		Weight:     row.Weight,
		Email:      row.Email,
		Version:    row.Version,
	}), nil
}
