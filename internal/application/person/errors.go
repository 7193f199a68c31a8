package person

import (
	"errors"
	"fmt"
	"strings"

	domain "github.com/mohammadpnp/person-service/internal/domain/person"
)

// Import errors are reported to API clients verbatim.
var (
	ErrImportAlreadyInProgress = errors.New("Another import is already in progress.")
	ErrEmptyFile               = errors.New("File is empty or does not exist.")
	ErrDuplicateEntry          = errors.New("Duplicate entry. Constraint violation: UC_PERSON_PESEL")
	ErrInvalidFileContent      = errors.New("invalid file content")
)

var (
	ErrUnknownPersonType           = domain.ErrUnknownKind
	ErrInvalidID                   = errors.New("invalid id")
	ErrValidation                  = errors.New("validation failed")
	ErrPositionNotBelongToEmployee = errors.New("position does not belong to employee")
	ErrCreatePerson                = errors.New("failed to create person")
	ErrAddPosition                 = errors.New("failed to add employee position")
)

// InvalidFileContentError ends an import run at the first row that could not be
// parsed, resolved or stored.
type InvalidFileContentError struct {
	Line int64
	Err  error
}

func (e *InvalidFileContentError) Error() string {
	return "Error during data import. Invalid file content. Message: " + e.Err.Error()
}

func (e *InvalidFileContentError) Unwrap() error {
	return e.Err
}

func (e *InvalidFileContentError) Is(target error) bool {
	return target == ErrInvalidFileContent
}

// ValidationError lists every rejected field of a command.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// messageError pairs a sentinel with the message shown to the client.
type messageError struct {
	kind    error
	message string
}

func (e *messageError) Error() string {
	return e.message
}

func (e *messageError) Unwrap() error {
	return e.kind
}

func withMessage(kind error, format string, args ...any) error {
	return &messageError{kind: kind, message: fmt.Sprintf(format, args...)}
}
