package dictionary

import (
	"context"
	"errors"
)

var ErrValueNotFound = errors.New("dictionary value not found")

// Value is one entry of a controlled vocabulary owned by the dictionary-service.
type Value struct {
	DictionaryID int64
	ID           int64
	Name         string
}

// IDs names the dictionaries person records refer to. The dictionary-service
// assigns them by insertion order, so the defaults are the ids it seeds.
type IDs struct {
	Type         int64
	Position     int64
	University   int64
	FieldOfStudy int64
}

func DefaultIDs() IDs {
	return IDs{Type: 1, Position: 2, University: 3, FieldOfStudy: 4}
}

type Resolver interface {
	ResolveByID(ctx context.Context, id int64) (Value, error)
	ResolveByDictionaryAndName(ctx context.Context, dictionaryID int64, name string) (Value, error)
}
