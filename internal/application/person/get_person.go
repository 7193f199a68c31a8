package person

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/mohammadpnp/person-service/internal/domain/person"
)

var ErrGetPerson = errors.New("failed to get person")

type GetPersonInput struct {
	ID int64
}

type GetPerson interface {
	Execute(ctx context.Context, in GetPersonInput) (PersonOutput, error)
}

type getPerson struct {
	repo domain.Repository
}

func NewGetPerson(repo domain.Repository) GetPerson {
	return &getPerson{repo: repo}
}

func (uc *getPerson) Execute(ctx context.Context, in GetPersonInput) (PersonOutput, error) {
	if in.ID <= 0 {
		return PersonOutput{}, ErrInvalidID
	}

	record, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrPersonNotFound) {
			return PersonOutput{}, personNotFound(in.ID)
		}
		return PersonOutput{}, fmt.Errorf("%w: %v", ErrGetPerson, err)
	}

	return toPersonOutput(record), nil
}

func personNotFound(id int64) error {
	return withMessage(domain.ErrPersonNotFound, "Person with id %d not found.", id)
}
