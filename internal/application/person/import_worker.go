package person

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	domain "github.com/mohammadpnp/person-service/internal/domain/person"
	"github.com/sirupsen/logrus"
)

const (
	ImportOutcomeCompleted = "completed"
	ImportOutcomeFailed    = "failed"
)

// ImportObserver receives import progress for metrics.
type ImportObserver interface {
	RowImported()
	RunFinished(outcome string, elapsed time.Duration)
}

type noopImportObserver struct{}

func (noopImportObserver) RowImported()                      {}
func (noopImportObserver) RunFinished(string, time.Duration) {}

type ImportWorkerConfig struct {
	MaxLineBytes int
	Logger       logrus.FieldLogger
	Observer     ImportObserver
}

// ImportWorker runs CSV imports one at a time in the background.
type ImportWorker struct {
	coordinator *ImportCoordinator
	factory     *RecordFactory
	saver       domain.RecordSaver
	cfg         ImportWorkerConfig

	runs sync.WaitGroup
}

func NewImportWorker(coordinator *ImportCoordinator, factory *RecordFactory, saver domain.RecordSaver, cfg ImportWorkerConfig) *ImportWorker {
	if cfg.MaxLineBytes <= 0 {
		cfg.MaxLineBytes = 1024 * 1024
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Observer == nil {
		cfg.Observer = noopImportObserver{}
	}

	return &ImportWorker{
		coordinator: coordinator,
		factory:     factory,
		saver:       saver,
		cfg:         cfg,
	}
}

// ImportRun is a handle to one accepted import.
type ImportRun struct {
	id   uuid.UUID
	done chan struct{}
	err  error
}

func (r *ImportRun) ID() uuid.UUID {
	return r.id
}

func (r *ImportRun) Done() <-chan struct{} {
	return r.done
}

// Err returns the error that ended the run, or nil while it is still running.
func (r *ImportRun) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// Start claims the import lock and processes content in the background.
// The run is detached from ctx cancellation and always finishes on its own.
func (w *ImportWorker) Start(ctx context.Context, content io.Reader) (*ImportRun, error) {
	status, ok := w.coordinator.TryStart()
	if !ok {
		return nil, ErrImportAlreadyInProgress
	}

	logger := w.cfg.Logger.WithField("run_id", status.RunID)

	if content == nil {
		w.coordinator.Finish(ErrEmptyFile)
		logger.Warn("import rejected: no file")
		return nil, ErrEmptyFile
	}

	reader := bufio.NewReader(content)
	if _, err := reader.Peek(1); err != nil {
		if !errors.Is(err, io.EOF) {
			err = &InvalidFileContentError{Err: err}
			w.coordinator.Finish(err)
			return nil, err
		}
		w.coordinator.Finish(ErrEmptyFile)
		logger.Warn("import rejected: empty file")
		return nil, ErrEmptyFile
	}

	run := &ImportRun{id: status.RunID, done: make(chan struct{})}
	runCtx := context.WithoutCancel(ctx)
	logger.Info("import started")

	w.runs.Add(1)
	go func() {
		defer w.runs.Done()
		w.execute(runCtx, run, reader, logger)
	}()

	return run, nil
}

// Wait blocks until the import in flight, if any, has finished.
func (w *ImportWorker) Wait() {
	w.runs.Wait()
}

func (w *ImportWorker) Status() domain.ImportStatus {
	return w.coordinator.Snapshot()
}

func (w *ImportWorker) execute(ctx context.Context, run *ImportRun, content io.Reader, logger logrus.FieldLogger) {
	started := time.Now()
	var err error

	defer func() {
		if r := recover(); r != nil {
			err = &InvalidFileContentError{Err: fmt.Errorf("panic: %v", r)}
		}

		final := w.coordinator.Finish(err)
		elapsed := time.Since(started)
		entry := logger.WithFields(logrus.Fields{
			"processed_rows": final.ProcessedRows,
			"duration":       elapsed.String(),
		})
		if err != nil {
			w.cfg.Observer.RunFinished(ImportOutcomeFailed, elapsed)
			entry.WithError(err).Error("import failed")
		} else {
			w.cfg.Observer.RunFinished(ImportOutcomeCompleted, elapsed)
			entry.Info("import completed")
		}

		run.err = err
		close(run.done)
	}()

	err = w.importRows(ctx, content)
}

func (w *ImportWorker) importRows(ctx context.Context, content io.Reader) error {
	scanner := bufio.NewScanner(content)
	scanner.Buffer(make([]byte, 0, min(64*1024, w.cfg.MaxLineBytes)), w.cfg.MaxLineBytes)

	factory := w.factory.WithResolver(newMemoResolver(w.factory.resolver))

	var line, processed int64
	for scanner.Scan() {
		line++
		if line == 1 {
			continue
		}

		text := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		// Rows of bare commas carry no data.
		fields := dropTrailingEmpty(strings.Split(text, ","))
		if len(fields) == 0 {
			continue
		}

		record, err := factory.FromCSV(ctx, fields)
		if err != nil {
			return &InvalidFileContentError{Line: line, Err: err}
		}

		if err := w.saver.Save(ctx, record); err != nil {
			if errors.Is(err, domain.ErrDuplicateNationalID) {
				return ErrDuplicateEntry
			}
			return &InvalidFileContentError{Line: line, Err: err}
		}

		processed++
		w.coordinator.Advance(processed)
		w.cfg.Observer.RowImported()
	}

	if err := scanner.Err(); err != nil {
		return &InvalidFileContentError{Line: line + 1, Err: err}
	}
	return nil
}
