package person

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/mohammadpnp/person-service/internal/domain/person"
)

type CreatePerson interface {
	Execute(ctx context.Context, in CreatePersonCommand) (PersonOutput, error)
}

type createPerson struct {
	factory *RecordFactory
	repo    domain.Repository
}

func NewCreatePerson(factory *RecordFactory, repo domain.Repository) CreatePerson {
	return &createPerson{factory: factory, repo: repo}
}

func (uc *createPerson) Execute(ctx context.Context, in CreatePersonCommand) (PersonOutput, error) {
	record, err := uc.factory.FromCommand(ctx, in)
	if err != nil {
		return PersonOutput{}, err
	}

	if err := uc.repo.Create(ctx, record); err != nil {
		if errors.Is(err, domain.ErrDuplicateNationalID) {
			return PersonOutput{}, withMessage(domain.ErrDuplicateNationalID, "Duplicated entry for 'pesel' field.")
		}
		return PersonOutput{}, fmt.Errorf("%w: %v", ErrCreatePerson, err)
	}

	return toPersonOutput(record), nil
}
