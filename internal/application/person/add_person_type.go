package person

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mohammadpnp/person-service/internal/domain/dictionary"
)

var ErrAddPersonType = errors.New("failed to add person type")

type AddPersonTypeInput struct {
	Name string
}

type AddPersonTypeOutput struct {
	DictionaryID int64  `json:"dictionaryId"`
	Name         string `json:"name"`
}

type AddPersonType interface {
	Execute(ctx context.Context, in AddPersonTypeInput) (AddPersonTypeOutput, error)
}

type typeRegistrar interface {
	AddType(ctx context.Context, name string) (dictionary.Value, error)
}

type addPersonType struct {
	registrar typeRegistrar
}

func NewAddPersonType(registrar typeRegistrar) AddPersonType {
	return &addPersonType{registrar: registrar}
}

func (uc *addPersonType) Execute(ctx context.Context, in AddPersonTypeInput) (AddPersonTypeOutput, error) {
	name := strings.ToLower(strings.TrimSpace(in.Name))
	if name == "" {
		return AddPersonTypeOutput{}, &ValidationError{Messages: []string{
			"field: name / rejectedValue: '' / message: must not be blank",
		}}
	}

	value, err := uc.registrar.AddType(ctx, name)
	if err != nil {
		return AddPersonTypeOutput{}, fmt.Errorf("%w: %v", ErrAddPersonType, err)
	}

	return AddPersonTypeOutput{DictionaryID: value.DictionaryID, Name: value.Name}, nil
}
