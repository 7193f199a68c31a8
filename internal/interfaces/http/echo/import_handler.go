package echo

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/person-service/internal/application/person"
	domain "github.com/mohammadpnp/person-service/internal/domain/person"
)

const (
	importStartedMessage   = "Data import has started. Check status endpoint /api/people/import/status for progress."
	importCompletedMessage = "Data import completed."
)

type importRunner interface {
	Start(ctx context.Context, content io.Reader) (*app.ImportRun, error)
	Status() domain.ImportStatus
}

type ImportHandler struct {
	imports importRunner
}

type importResponse struct {
	Status string `json:"status"`
	RunID  string `json:"runId,omitempty"`
}

type importStatusResponse struct {
	StartTime     *string `json:"startTime"`
	Status        string  `json:"status"`
	EndTime       *string `json:"endTime"`
	ProcessedRows int64   `json:"processedRows"`
	RunID         string  `json:"runId,omitempty"`
	Error         string  `json:"error,omitempty"`
}

func NewImportHandler(imports importRunner) *ImportHandler {
	return &ImportHandler{imports: imports}
}

// ImportPeople accepts a CSV file in the multipart field "file". The import runs
// in the background unless the wait query parameter is true.
func (h *ImportHandler) ImportPeople(c echo.Context) error {
	content, err := readUpload(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, codeBadRequest, "Invalid multipart request.")
	}

	run, err := h.imports.Start(c.Request().Context(), content)
	if err != nil {
		return respondError(c, err)
	}

	if wait, _ := strconv.ParseBool(c.QueryParam("wait")); wait {
		select {
		case <-run.Done():
		case <-c.Request().Context().Done():
			return c.Request().Context().Err()
		}
		if err := run.Err(); err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, importResponse{Status: importCompletedMessage, RunID: run.ID().String()})
	}

	return c.JSON(http.StatusAccepted, importResponse{Status: importStartedMessage, RunID: run.ID().String()})
}

func (h *ImportHandler) ImportStatus(c echo.Context) error {
	status := h.imports.Status()

	out := importStatusResponse{
		StartTime:     formatTime(status.StartTime),
		Status:        status.Description(),
		EndTime:       formatTime(status.EndTime),
		ProcessedRows: status.ProcessedRows,
		Error:         status.Error,
	}
	if status.StartTime != nil {
		out.RunID = status.RunID.String()
	}
	return c.JSON(http.StatusOK, out)
}

// readUpload returns the uploaded file content, or nil when no file was sent.
// The content is read into memory because the multipart temp file is removed
// once the request ends.
func readUpload(c echo.Context) (io.Reader, error) {
	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
