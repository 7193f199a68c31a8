package person

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/mohammadpnp/person-service/internal/domain/person"
)

var ErrDeletePerson = errors.New("failed to delete person")

type DeletePersonInput struct {
	ID int64
}

type DeletePerson interface {
	Execute(ctx context.Context, in DeletePersonInput) error
}

type deletePerson struct {
	repo domain.Repository
}

func NewDeletePerson(repo domain.Repository) DeletePerson {
	return &deletePerson{repo: repo}
}

func (uc *deletePerson) Execute(ctx context.Context, in DeletePersonInput) error {
	if in.ID <= 0 {
		return ErrInvalidID
	}

	if err := uc.repo.Delete(ctx, in.ID); err != nil {
		if errors.Is(err, domain.ErrPersonNotFound) {
			return personNotFound(in.ID)
		}
		return fmt.Errorf("%w: %v", ErrDeletePerson, err)
	}
	return nil
}
