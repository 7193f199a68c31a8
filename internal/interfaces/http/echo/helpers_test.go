package echo_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	httpecho "github.com/mohammadpnp/person-service/internal/interfaces/http/echo"
	"github.com/sirupsen/logrus/hooks/test"
)

type errorBody struct {
	ErrorMessages []string `json:"errorMessages"`
	ErrorCode     string   `json:"errorCode"`
	Timestamp     string   `json:"timestamp"`
}

func newServer(t *testing.T, importHandler *httpecho.ImportHandler, personHandler *httpecho.PersonHandler, positionHandler *httpecho.PositionHandler) (*echo.Echo, *test.Hook) {
	t.Helper()

	logger, hook := test.NewNullLogger()
	e := echo.New()
	e.Use(middleware.RequestID())
	e.Use(httpecho.RequestLogger(logger))
	httpecho.RegisterRoutes(e, importHandler, personHandler, positionHandler)
	return e, hook
}

func decodeError(t *testing.T, body []byte) errorBody {
	t.Helper()

	var got errorBody
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unexpected json: %v", err)
	}
	if _, err := time.Parse("2006-01-02 15:04:05", got.Timestamp); err != nil {
		t.Fatalf("unexpected timestamp %q: %v", got.Timestamp, err)
	}
	return got
}
