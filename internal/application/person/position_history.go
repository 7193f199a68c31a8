package person

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mohammadpnp/person-service/internal/domain/dictionary"
	domain "github.com/mohammadpnp/person-service/internal/domain/person"
	"github.com/shopspring/decimal"
)

type AddPositionInput struct {
	PositionID int64            `json:"positionId" validate:"gt=0"`
	StartDate  string           `json:"startDate" validate:"required,datetime=2006-01-02"`
	Salary     *decimal.Decimal `json:"salary"`
}

type PositionOutput struct {
	ID         int64           `json:"id"`
	EmployeeID int64           `json:"employeeId"`
	PositionID int64           `json:"positionId"`
	StartDate  string          `json:"startDate"`
	EndDate    *string         `json:"endDate"`
	Salary     decimal.Decimal `json:"salary"`
}

// PositionObserver is notified about every stored position.
type PositionObserver interface {
	PositionAdded()
}

type noopPositionObserver struct{}

func (noopPositionObserver) PositionAdded() {}

type PositionHistoryConfig struct {
	Dictionaries dictionary.IDs
	TxTimeout    time.Duration
	Observer     PositionObserver
}

// PositionHistory maintains the position history of employees.
type PositionHistory struct {
	people    domain.Repository
	positions domain.PositionRepository
	resolver  dictionary.Resolver
	cfg       PositionHistoryConfig
}

func NewPositionHistory(people domain.Repository, positions domain.PositionRepository, resolver dictionary.Resolver, cfg PositionHistoryConfig) *PositionHistory {
	if cfg.TxTimeout <= 0 {
		cfg.TxTimeout = 5 * time.Second
	}
	if cfg.Observer == nil {
		cfg.Observer = noopPositionObserver{}
	}

	return &PositionHistory{
		people:    people,
		positions: positions,
		resolver:  resolver,
		cfg:       cfg,
	}
}

// AddPosition appends a position to the employee's history and makes it the
// employee's current one. Validation and writes share one transaction holding
// the employee row lock.
func (h *PositionHistory) AddPosition(ctx context.Context, employeeID int64, in AddPositionInput) (PositionOutput, error) {
	if employeeID <= 0 {
		return PositionOutput{}, ErrInvalidID
	}
	if err := validateStruct(in); err != nil {
		return PositionOutput{}, err
	}
	startDate, err := domain.ParseDate(in.StartDate)
	if err != nil {
		return PositionOutput{}, err
	}

	if _, err := h.people.GetEmployee(ctx, employeeID); err != nil {
		return PositionOutput{}, h.employeeError(employeeID, err)
	}

	value, err := h.resolver.ResolveByID(ctx, in.PositionID)
	if err != nil {
		return PositionOutput{}, h.dictionaryError(err)
	}
	value, err = h.resolver.ResolveByDictionaryAndName(ctx, h.cfg.Dictionaries.Position, value.Name)
	if err != nil {
		return PositionOutput{}, h.dictionaryError(err)
	}

	txCtx, cancel := context.WithTimeout(ctx, h.cfg.TxTimeout)
	defer cancel()

	position := &domain.EmployeePosition{
		EmployeeID: employeeID,
		PositionID: value.ID,
		StartDate:  startDate,
		Salary:     *in.Salary,
	}

	err = h.positions.RunInTx(txCtx, func(store domain.PositionStore) error {
		employee, err := store.LockEmployee(txCtx, employeeID)
		if err != nil {
			return err
		}

		existing, err := store.ListByEmployee(txCtx, employeeID)
		if err != nil {
			return err
		}

		if err := domain.ValidateNewPosition(employee, existing, startDate); err != nil {
			return err
		}

		if err := store.Create(txCtx, position); err != nil {
			return err
		}

		employee.CurrentPositionID = position.PositionID
		employee.CurrentSalary = position.Salary
		return store.UpdateCurrentPosition(txCtx, employee)
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrIllegalEmploymentDate), errors.Is(err, domain.ErrVersionConflict):
			return PositionOutput{}, err
		case errors.Is(err, domain.ErrEmployeeNotFound):
			return PositionOutput{}, h.employeeError(employeeID, err)
		default:
			return PositionOutput{}, fmt.Errorf("%w: %v", ErrAddPosition, err)
		}
	}

	h.cfg.Observer.PositionAdded()
	return toPositionOutput(*position), nil
}

// CloseOutPosition sets the end date of a position. Other positions of the
// employee are not checked against the new end date.
func (h *PositionHistory) CloseOutPosition(ctx context.Context, employeeID, positionID int64, endDate string) (PositionOutput, error) {
	position, err := h.ownedPosition(ctx, employeeID, positionID)
	if err != nil {
		return PositionOutput{}, err
	}

	if endDate == "" {
		return PositionOutput{}, &ValidationError{Messages: []string{
			"field: endDate / rejectedValue: 'null' / message: must not be null",
		}}
	}
	end, err := domain.ParseDate(endDate)
	if err != nil {
		return PositionOutput{}, &ValidationError{Messages: []string{
			fmt.Sprintf("field: endDate / rejectedValue: '%s' / message: must be a date in format %s", endDate, domain.DateLayout),
		}}
	}

	if err := h.positions.SetEndDate(ctx, positionID, end); err != nil {
		if errors.Is(err, domain.ErrPositionNotFound) {
			return PositionOutput{}, positionNotFound(positionID)
		}
		return PositionOutput{}, fmt.Errorf("close out position %d: %w", positionID, err)
	}

	position.EndDate = &end
	return toPositionOutput(*position), nil
}

func (h *PositionHistory) ListPositions(ctx context.Context, employeeID int64) ([]PositionOutput, error) {
	if employeeID <= 0 {
		return nil, ErrInvalidID
	}
	if _, err := h.people.GetEmployee(ctx, employeeID); err != nil {
		return nil, h.employeeError(employeeID, err)
	}

	positions, err := h.positions.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list positions of employee %d: %w", employeeID, err)
	}

	out := make([]PositionOutput, 0, len(positions))
	for _, p := range positions {
		out = append(out, toPositionOutput(p))
	}
	return out, nil
}

func (h *PositionHistory) GetPosition(ctx context.Context, employeeID, positionID int64) (PositionOutput, error) {
	position, err := h.ownedPosition(ctx, employeeID, positionID)
	if err != nil {
		return PositionOutput{}, err
	}
	return toPositionOutput(*position), nil
}

func (h *PositionHistory) DeletePosition(ctx context.Context, employeeID, positionID int64) error {
	if _, err := h.ownedPosition(ctx, employeeID, positionID); err != nil {
		return err
	}
	if err := h.positions.Delete(ctx, positionID); err != nil {
		if errors.Is(err, domain.ErrPositionNotFound) {
			return positionNotFound(positionID)
		}
		return fmt.Errorf("delete position %d: %w", positionID, err)
	}
	return nil
}

func (h *PositionHistory) ownedPosition(ctx context.Context, employeeID, positionID int64) (*domain.EmployeePosition, error) {
	if employeeID <= 0 || positionID <= 0 {
		return nil, ErrInvalidID
	}

	position, err := h.positions.GetByID(ctx, positionID)
	if err != nil {
		if errors.Is(err, domain.ErrPositionNotFound) {
			return nil, positionNotFound(positionID)
		}
		return nil, fmt.Errorf("get position %d: %w", positionID, err)
	}

	if position.EmployeeID != employeeID {
		return nil, withMessage(ErrPositionNotBelongToEmployee,
			"Position with id %d does not belong to the employee with id %d.", positionID, employeeID)
	}
	return position, nil
}

func (h *PositionHistory) employeeError(employeeID int64, err error) error {
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		return withMessage(domain.ErrEmployeeNotFound, "Employee with id %d not found.", employeeID)
	}
	return fmt.Errorf("get employee %d: %w", employeeID, err)
}

func (h *PositionHistory) dictionaryError(err error) error {
	if errors.Is(err, dictionary.ErrValueNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrAddPosition, err)
}

func positionNotFound(positionID int64) error {
	return withMessage(domain.ErrPositionNotFound, "Employee position with id %d not found.", positionID)
}

func toPositionOutput(p domain.EmployeePosition) PositionOutput {
	out := PositionOutput{
		ID:         p.ID,
		EmployeeID: p.EmployeeID,
		PositionID: p.PositionID,
		StartDate:  p.StartDate.Format(domain.DateLayout),
		Salary:     p.Salary,
	}
	if p.EndDate != nil {
		end := p.EndDate.Format(domain.DateLayout)
		out.EndDate = &end
	}
	return out
}
