package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/mohammadpnp/person-service/internal/domain/person"
	"github.com/mohammadpnp/person-service/internal/infrastructure/repository"
	"github.com/shopspring/decimal"
)

func TestPositionRepositoryTransactionIntegration(t *testing.T) {
	db, _ := openTestDB(t)
	cleanupPeople(t, db, "83030300001")

	people := repository.NewPersonRepository(db)
	positions := repository.NewPositionRepository(db)
	ctx := context.Background()

	employee := &domain.Employee{
		Person: domain.Person{
			TypeID: 12, FirstName: "Ewa", LastName: "Lis", NationalID: "83030300001",
			Height: 160, Weight: 60, Email: "ewa-positions@example.com",
		},
		EmploymentStartDate: time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC),
		CurrentPositionID:   21,
		CurrentSalary:       decimal.NewFromInt(3000),
	}
	if err := people.Create(ctx, employee); err != nil {
		t.Fatalf("create employee failed: %v", err)
	}

	position := &domain.EmployeePosition{
		EmployeeID: employee.ID,
		PositionID: 22,
		StartDate:  time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
		Salary:     decimal.NewFromInt(4000),
	}
	err := positions.RunInTx(ctx, func(store domain.PositionStore) error {
		locked, err := store.LockEmployee(ctx, employee.ID)
		if err != nil {
			return err
		}
		if err := store.Create(ctx, position); err != nil {
			return err
		}
		locked.CurrentPositionID = position.PositionID
		locked.CurrentSalary = position.Salary
		return store.UpdateCurrentPosition(ctx, locked)
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}

	updated, err := people.GetEmployee(ctx, employee.ID)
	if err != nil {
		t.Fatalf("get employee failed: %v", err)
	}
	if updated.CurrentPositionID != 22 || updated.Version != employee.Version+1 {
		t.Fatalf("unexpected employee after update: %+v", updated)
	}

	// A stale version is rejected and nothing from the transaction is kept.
	stale := &domain.EmployeePosition{
		EmployeeID: employee.ID,
		PositionID: 21,
		StartDate:  time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		Salary:     decimal.NewFromInt(5000),
	}
	err = positions.RunInTx(ctx, func(store domain.PositionStore) error {
		if err := store.Create(ctx, stale); err != nil {
			return err
		}
		return store.UpdateCurrentPosition(ctx, employee)
	})
	if !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}

	list, err := positions.ListByEmployee(ctx, employee.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != position.ID {
		t.Fatalf("unexpected positions: %+v", list)
	}

	end := time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)
	if err := positions.SetEndDate(ctx, position.ID, end); err != nil {
		t.Fatalf("set end date failed: %v", err)
	}
	got, err := positions.GetByID(ctx, position.ID)
	if err != nil {
		t.Fatalf("get position failed: %v", err)
	}
	if got.EndDate == nil || got.EndDate.Format(domain.DateLayout) != "2020-12-31" {
		t.Fatalf("unexpected end date: %v", got.EndDate)
	}

	if err := positions.Delete(ctx, position.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := positions.GetByID(ctx, position.ID); !errors.Is(err, domain.ErrPositionNotFound) {
		t.Fatalf("expected ErrPositionNotFound, got %v", err)
	}
}
