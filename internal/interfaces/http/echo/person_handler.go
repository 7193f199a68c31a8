package echo

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/person-service/internal/application/person"
)

type PersonHandler struct {
	create  app.CreatePerson
	get     app.GetPerson
	remove  app.DeletePerson
	addType app.AddPersonType
}

func NewPersonHandler(create app.CreatePerson, get app.GetPerson, remove app.DeletePerson, addType app.AddPersonType) *PersonHandler {
	return &PersonHandler{create: create, get: get, remove: remove, addType: addType}
}

func (h *PersonHandler) CreatePerson(c echo.Context) error {
	var cmd app.CreatePersonCommand
	if err := c.Bind(&cmd); err != nil {
		return writeError(c, http.StatusBadRequest, codeBadRequest, "Invalid request body.")
	}

	out, err := h.create.Execute(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *PersonHandler) GetPerson(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	out, err := h.get.Execute(c.Request().Context(), app.GetPersonInput{ID: id})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PersonHandler) DeletePerson(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.remove.Execute(c.Request().Context(), app.DeletePersonInput{ID: id}); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PersonHandler) AddPersonType(c echo.Context) error {
	out, err := h.addType.Execute(c.Request().Context(), app.AddPersonTypeInput{Name: c.QueryParam("name")})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive number", app.ErrInvalidID, name)
	}
	return id, nil
}
