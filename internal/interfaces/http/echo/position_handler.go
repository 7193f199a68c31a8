package echo

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/person-service/internal/application/person"
)

type positionService interface {
	AddPosition(ctx context.Context, employeeID int64, in app.AddPositionInput) (app.PositionOutput, error)
	CloseOutPosition(ctx context.Context, employeeID, positionID int64, endDate string) (app.PositionOutput, error)
	ListPositions(ctx context.Context, employeeID int64) ([]app.PositionOutput, error)
	GetPosition(ctx context.Context, employeeID, positionID int64) (app.PositionOutput, error)
	DeletePosition(ctx context.Context, employeeID, positionID int64) error
}

type PositionHandler struct {
	positions positionService
}

type closeOutPositionRequest struct {
	EndDate string `json:"endDate"`
}

func NewPositionHandler(positions positionService) *PositionHandler {
	return &PositionHandler{positions: positions}
}

func (h *PositionHandler) AddPosition(c echo.Context) error {
	employeeID, err := pathID(c, "employeeId")
	if err != nil {
		return respondError(c, err)
	}

	var in app.AddPositionInput
	if err := c.Bind(&in); err != nil {
		return writeError(c, http.StatusBadRequest, codeBadRequest, "Invalid request body.")
	}

	out, err := h.positions.AddPosition(c.Request().Context(), employeeID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *PositionHandler) CloseOutPosition(c echo.Context) error {
	employeeID, positionID, err := positionPath(c)
	if err != nil {
		return respondError(c, err)
	}

	var req closeOutPositionRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, codeBadRequest, "Invalid request body.")
	}

	out, err := h.positions.CloseOutPosition(c.Request().Context(), employeeID, positionID, req.EndDate)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PositionHandler) ListPositions(c echo.Context) error {
	employeeID, err := pathID(c, "employeeId")
	if err != nil {
		return respondError(c, err)
	}

	out, err := h.positions.ListPositions(c.Request().Context(), employeeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PositionHandler) GetPosition(c echo.Context) error {
	employeeID, positionID, err := positionPath(c)
	if err != nil {
		return respondError(c, err)
	}

	out, err := h.positions.GetPosition(c.Request().Context(), employeeID, positionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PositionHandler) DeletePosition(c echo.Context) error {
	employeeID, positionID, err := positionPath(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.positions.DeletePosition(c.Request().Context(), employeeID, positionID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func positionPath(c echo.Context) (int64, int64, error) {
	employeeID, err := pathID(c, "employeeId")
	if err != nil {
		return 0, 0, err
	}
	positionID, err := pathID(c, "positionId")
	if err != nil {
		return 0, 0, err
	}
	return employeeID, positionID, nil
}
