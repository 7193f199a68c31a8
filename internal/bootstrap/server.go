package bootstrap

import (
	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	app "github.com/mohammadpnp/person-service/internal/application/person"
	"github.com/mohammadpnp/person-service/internal/config"
	"github.com/mohammadpnp/person-service/internal/infrastructure/dictionary"
	"github.com/mohammadpnp/person-service/internal/infrastructure/repository"
	httpecho "github.com/mohammadpnp/person-service/internal/interfaces/http/echo"
	"github.com/mohammadpnp/person-service/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Server is the wired HTTP server together with the import worker it feeds.
type Server struct {
	Echo    *echo.Echo
	Imports *app.ImportWorker
}

func NewHTTPServer(cfg *config.Config, db *gorm.DB, pool *pgxpool.Pool, logger logrus.FieldLogger, registry *prometheus.Registry) (*Server, error) {
	collectors := metrics.New(registry)

	dictionaries, err := dictionary.NewClient(dictionary.Config{
		BaseURL:          cfg.Dictionary.URL,
		Timeout:          cfg.Dictionary.Timeout,
		TypeDictionaryID: cfg.Dictionary.TypeID,
		RequestIDHeader:  echo.HeaderXRequestID,
		Observer:         collectors,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create dictionary client")
	}

	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit(cfg.ImportMaxUpload))
	server.Use(httpecho.RequestLogger(logger))

	people := repository.NewPersonRepository(db)
	positions := repository.NewPositionRepository(db)
	factory := app.NewRecordFactory(dictionaries, cfg.Dictionary.IDs())

	imports := app.NewImportWorker(app.NewImportCoordinator(), factory, repository.NewPersonImportRepository(pool), app.ImportWorkerConfig{
		MaxLineBytes: cfg.ImportMaxLine,
		Logger:       logger,
		Observer:     collectors,
	})
	importHandler := httpecho.NewImportHandler(imports)

	personHandler := httpecho.NewPersonHandler(
		app.NewCreatePerson(factory, people),
		app.NewGetPerson(people),
		app.NewDeletePerson(people),
		app.NewAddPersonType(dictionaries),
	)

	positionHandler := httpecho.NewPositionHandler(app.NewPositionHistory(people, positions, dictionaries, app.PositionHistoryConfig{
		Dictionaries: cfg.Dictionary.IDs(),
		TxTimeout:    cfg.PositionTx,
		Observer:     collectors,
	}))

	httpecho.RegisterRoutes(server, importHandler, personHandler, positionHandler)
	httpecho.RegisterOps(server, collectors.Handler())

	return &Server{Echo: server, Imports: imports}, nil
}
