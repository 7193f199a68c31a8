package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	app "github.com/mohammadpnp/person-service/internal/application/person"
	"github.com/mohammadpnp/person-service/internal/config"
	domain "github.com/mohammadpnp/person-service/internal/domain/person"
	"github.com/mohammadpnp/person-service/internal/infrastructure/dictionary"
	"github.com/mohammadpnp/person-service/internal/infrastructure/file"
	"github.com/mohammadpnp/person-service/internal/infrastructure/repository"
	"github.com/spf13/cobra"
)

var (
	successColor = color.New(color.FgHiGreen)
	failureColor = color.New(color.FgRed)
	labelColor   = color.New(color.FgCyan)
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import people from a local CSV file into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".env", ".env.local")
			if err != nil {
				return err
			}
			logger := cfg.NewLogger()

			source, err := file.NewLocalSource(cfg.ImportBaseDir).Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer source.Close()

			pool, err := pgxpool.New(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return errors.Wrap(err, "create pgx pool")
			}
			defer pool.Close()

			dictionaries, err := dictionary.NewClient(dictionary.Config{
				BaseURL:          cfg.Dictionary.URL,
				Timeout:          cfg.Dictionary.Timeout,
				TypeDictionaryID: cfg.Dictionary.TypeID,
			})
			if err != nil {
				return err
			}

			worker := app.NewImportWorker(
				app.NewImportCoordinator(),
				app.NewRecordFactory(dictionaries, cfg.Dictionary.IDs()),
				repository.NewPersonImportRepository(pool),
				app.ImportWorkerConfig{MaxLineBytes: cfg.ImportMaxLine, Logger: logger},
			)

			run, err := worker.Start(cmd.Context(), source)
			if err != nil {
				return err
			}
			<-run.Done()

			printStatus(cmd, worker.Status())
			return run.Err()
		},
	}
}

func printStatus(cmd *cobra.Command, status domain.ImportStatus) {
	out := cmd.OutOrStdout()

	description := status.Description()
	switch {
	case status.Completed:
		description = successColor.Sprint(description)
	case status.Error != "":
		description = failureColor.Sprint(description)
	}

	fmt.Fprintf(out, "%s %s\n", labelColor.Sprint("status:"), description)
	fmt.Fprintf(out, "%s %d\n", labelColor.Sprint("processed rows:"), status.ProcessedRows)
	if status.StartTime != nil && status.EndTime != nil {
		fmt.Fprintf(out, "%s %s\n", labelColor.Sprint("duration:"), status.EndTime.Sub(*status.StartTime))
	}
	if status.Error != "" {
		fmt.Fprintf(out, "%s %s\n", labelColor.Sprint("error:"), failureColor.Sprint(status.Error))
	}
}
