package person_test

import (
	"context"
	"errors"
	"testing"
	"time"

	app "github.com/mohammadpnp/person-service/internal/application/person"
	"github.com/mohammadpnp/person-service/internal/domain/dictionary"
	domain "github.com/mohammadpnp/person-service/internal/domain/person"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type positionCounter struct {
	added int
}

func (c *positionCounter) PositionAdded() {
	c.added++
}

func newHistoryFixture(t *testing.T) (*app.PositionHistory, *fakePeople, *fakePositions, *positionCounter) {
	t.Helper()

	employee := &domain.Employee{
		Person: domain.Person{
			ID: 7, TypeID: 12, FirstName: "Jan", LastName: "Kowalski", NationalID: "90010112345",
			Height: 180, Weight: 80, Email: "jan@example.com",
		},
		EmploymentStartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		CurrentPositionID:   21,
		CurrentSalary:       decimal.NewFromInt(4000),
	}
	retiree := &domain.Retiree{Person: domain.Person{ID: 8, FirstName: "Piotr"}}

	people := newFakePeople(employee, retiree)
	positions := &fakePositions{people: people}
	counter := &positionCounter{}
	history := app.NewPositionHistory(people, positions, newFakeResolver(), app.PositionHistoryConfig{
		Dictionaries: dictionary.DefaultIDs(),
		Observer:     counter,
	})
	return history, people, positions, counter
}

func positionInput(positionID int64, start string, salary int64) app.AddPositionInput {
	amount := decimal.NewFromInt(salary)
	return app.AddPositionInput{PositionID: positionID, StartDate: start, Salary: &amount}
}

func TestPositionHistoryFollowsHistoryRules(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	history, people, _, counter := newHistoryFixture(t)

	first, err := history.AddPosition(ctx, 7, positionInput(21, "2020-06-01", 5000))
	require.NoError(t, err)
	assert.Equal(t, int64(21), first.PositionID)
	assert.Nil(t, first.EndDate)

	employee := people.records[7].(*domain.Employee)
	assert.True(t, decimal.NewFromInt(5000).Equal(employee.CurrentSalary))

	_, err = history.AddPosition(ctx, 7, positionInput(22, "2021-06-01", 6000))
	require.ErrorIs(t, err, domain.ErrIllegalEmploymentDate)
	assert.Equal(t, "Not all existing employee's positions have an end date. To add new position all previous must be over.", err.Error())

	closed, err := history.CloseOutPosition(ctx, 7, first.ID, "2021-01-01")
	require.NoError(t, err)
	require.NotNil(t, closed.EndDate)
	assert.Equal(t, "2021-01-01", *closed.EndDate)

	_, err = history.AddPosition(ctx, 7, positionInput(22, "2020-12-01", 6000))
	require.ErrorIs(t, err, domain.ErrIllegalEmploymentDate)
	assert.Equal(t, "New position overlaps with an existing one.", err.Error())

	second, err := history.AddPosition(ctx, 7, positionInput(22, "2021-02-01", 6000))
	require.NoError(t, err)
	assert.Equal(t, int64(22), second.PositionID)
	assert.Equal(t, int64(22), employee.CurrentPositionID)
	assert.True(t, decimal.NewFromInt(6000).Equal(employee.CurrentSalary))

	list, err := history.ListPositions(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, counter.added)
}

func TestPositionHistoryRejectsStartBeforeEmployment(t *testing.T) {
	t.Parallel()

	history, _, _, counter := newHistoryFixture(t)

	_, err := history.AddPosition(context.Background(), 7, positionInput(21, "2019-12-31", 5000))
	require.ErrorIs(t, err, domain.ErrIllegalEmploymentDate)
	assert.Equal(t, "Start date of the new position cannot be before employee's employment start date: 2020-01-01", err.Error())
	assert.Zero(t, counter.added)
}

func TestPositionHistoryAddPositionLookupFailures(t *testing.T) {
	t.Parallel()

	history, _, _, _ := newHistoryFixture(t)
	ctx := context.Background()

	_, err := history.AddPosition(ctx, 99, positionInput(21, "2020-06-01", 5000))
	require.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	assert.Equal(t, "Employee with id 99 not found.", err.Error())

	_, err = history.AddPosition(ctx, 8, positionInput(21, "2020-06-01", 5000))
	require.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	_, err = history.AddPosition(ctx, 7, positionInput(31, "2020-06-01", 5000))
	require.ErrorIs(t, err, dictionary.ErrValueNotFound)

	_, err = history.AddPosition(ctx, 7, positionInput(404, "2020-06-01", 5000))
	require.ErrorIs(t, err, dictionary.ErrValueNotFound)
}

func TestPositionHistoryAddPositionValidatesInput(t *testing.T) {
	t.Parallel()

	history, _, _, _ := newHistoryFixture(t)

	_, err := history.AddPosition(context.Background(), 7, app.AddPositionInput{PositionID: 0, StartDate: "June"})
	require.ErrorIs(t, err, app.ErrValidation)

	var validationErr *app.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Len(t, validationErr.Messages, 3)
}

func TestPositionHistoryVersionConflictIsReported(t *testing.T) {
	t.Parallel()

	history, _, positions, _ := newHistoryFixture(t)
	positions.updateErr = domain.ErrVersionConflict

	_, err := history.AddPosition(context.Background(), 7, positionInput(21, "2020-06-01", 5000))
	require.ErrorIs(t, err, domain.ErrVersionConflict)

	list, err := history.ListPositions(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPositionHistoryOwnership(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	history, people, _, _ := newHistoryFixture(t)
	other := &domain.Employee{
		Person:              domain.Person{ID: 9, FirstName: "Ewa"},
		EmploymentStartDate: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	people.records[9] = other

	created, err := history.AddPosition(ctx, 9, positionInput(22, "2019-01-01", 3000))
	require.NoError(t, err)

	_, err = history.CloseOutPosition(ctx, 7, created.ID, "2020-01-01")
	require.ErrorIs(t, err, app.ErrPositionNotBelongToEmployee)
	assert.Equal(t, "Position with id 1 does not belong to the employee with id 7.", err.Error())

	_, err = history.GetPosition(ctx, 7, created.ID)
	require.ErrorIs(t, err, app.ErrPositionNotBelongToEmployee)

	err = history.DeletePosition(ctx, 7, created.ID)
	require.ErrorIs(t, err, app.ErrPositionNotBelongToEmployee)

	_, err = history.GetPosition(ctx, 9, 404)
	require.ErrorIs(t, err, domain.ErrPositionNotFound)

	got, err := history.GetPosition(ctx, 9, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2019-01-01", got.StartDate)

	require.NoError(t, history.DeletePosition(ctx, 9, created.ID))
	_, err = history.GetPosition(ctx, 9, created.ID)
	require.ErrorIs(t, err, domain.ErrPositionNotFound)
}

func TestPositionHistoryCloseOutRequiresEndDate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	history, _, _, _ := newHistoryFixture(t)

	created, err := history.AddPosition(ctx, 7, positionInput(21, "2020-06-01", 5000))
	require.NoError(t, err)

	_, err = history.CloseOutPosition(ctx, 7, created.ID, "")
	require.ErrorIs(t, err, app.ErrValidation)

	_, err = history.CloseOutPosition(ctx, 7, created.ID, "soon")
	require.ErrorIs(t, err, app.ErrValidation)
}
