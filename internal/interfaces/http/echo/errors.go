package echo

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/person-service/internal/application/person"
	"github.com/mohammadpnp/person-service/internal/domain/dictionary"
	domain "github.com/mohammadpnp/person-service/internal/domain/person"
)

const (
	codeBadRequest     = "BAD_REQUEST"
	codeNotFound       = "NOT_FOUND"
	codeConflict       = "CONFLICT"
	codePeselNotUnique = "PESEL_NOT_UNIQUE"
	codeInternalError  = "INTERNAL_ERROR"

	timestampLayout = "2006-01-02 15:04:05"
)

type errorResponse struct {
	ErrorMessages []string `json:"errorMessages"`
	ErrorCode     string   `json:"errorCode"`
	Timestamp     string   `json:"timestamp"`
}

func writeError(c echo.Context, status int, code string, messages ...string) error {
	return c.JSON(status, errorResponse{
		ErrorMessages: messages,
		ErrorCode:     code,
		Timestamp:     time.Now().Format(timestampLayout),
	})
}

// respondError translates application and domain errors into HTTP responses.
func respondError(c echo.Context, err error) error {
	var validationErr *app.ValidationError
	if errors.As(err, &validationErr) {
		return writeError(c, http.StatusBadRequest, codeBadRequest, validationErr.Messages...)
	}

	switch {
	case errors.Is(err, domain.ErrDuplicateNationalID):
		return writeError(c, http.StatusBadRequest, codePeselNotUnique, err.Error())
	case errors.Is(err, domain.ErrPersonNotFound),
		errors.Is(err, domain.ErrEmployeeNotFound),
		errors.Is(err, domain.ErrPositionNotFound),
		errors.Is(err, dictionary.ErrValueNotFound):
		return writeError(c, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, domain.ErrVersionConflict):
		return writeError(c, http.StatusConflict, codeConflict,
			"The record was modified concurrently. Reload it and try again.")
	case errors.Is(err, app.ErrImportAlreadyInProgress),
		errors.Is(err, app.ErrEmptyFile),
		errors.Is(err, app.ErrDuplicateEntry),
		errors.Is(err, app.ErrInvalidFileContent),
		errors.Is(err, domain.ErrIllegalEmploymentDate),
		errors.Is(err, app.ErrPositionNotBelongToEmployee),
		errors.Is(err, app.ErrUnknownPersonType),
		errors.Is(err, app.ErrInvalidID):
		return writeError(c, http.StatusBadRequest, codeBadRequest, err.Error())
	}

	loggerFrom(c).WithError(err).Error("request failed")
	return writeError(c, http.StatusInternalServerError, codeInternalError, "Internal server error.")
}
