package echo

import (
	"net/http"

	e "github.com/labstack/echo/v4"
)

func RegisterRoutes(server *e.Echo, importHandler *ImportHandler, personHandler *PersonHandler, positionHandler *PositionHandler) {
	api := server.Group("/api")

	api.POST("/people/import", importHandler.ImportPeople)
	api.GET("/people/import/status", importHandler.ImportStatus)

	api.POST("/people", personHandler.CreatePerson)
	api.POST("/people/type", personHandler.AddPersonType)
	api.GET("/people/:id", personHandler.GetPerson)
	api.DELETE("/people/:id", personHandler.DeletePerson)

	positions := api.Group("/employees/:employeeId/positions")
	positions.POST("", positionHandler.AddPosition)
	positions.GET("", positionHandler.ListPositions)
	positions.GET("/:positionId", positionHandler.GetPosition)
	positions.PATCH("/:positionId", positionHandler.CloseOutPosition)
	positions.DELETE("/:positionId", positionHandler.DeletePosition)
}

// RegisterOps adds the health and metrics endpoints.
func RegisterOps(server *e.Echo, metrics http.Handler) {
	server.GET("/healthz", func(c e.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	server.GET("/metrics", e.WrapHandler(metrics))
}
