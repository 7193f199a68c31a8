package file

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
)

var ErrNotCSV = errors.New("import file must have a .csv extension")

// LocalSource opens import files from the local filesystem.
type LocalSource struct {
	BaseDir string
}

func NewLocalSource(baseDir string) *LocalSource {
	if baseDir == "" {
		baseDir = "."
	}
	return &LocalSource{BaseDir: baseDir}
}

// Open returns the CSV file at sourcePath, relative to BaseDir unless absolute.
func (s *LocalSource) Open(ctx context.Context, sourcePath string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !strings.EqualFold(filepath.Ext(sourcePath), ".csv") {
		return nil, errors.Wrapf(ErrNotCSV, "open %s", sourcePath)
	}

	path := sourcePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.BaseDir, sourcePath)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "stat file %s", path)
	}
	if info.IsDir() {
		return nil, errors.Errorf("open file %s: is a directory", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open file %s", path)
	}
	return file, nil
}
