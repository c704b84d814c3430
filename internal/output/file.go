package output

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ahrav/go-usage/internal/domain"
)

// FilePublisher writes reports into a directory.
type FilePublisher struct {
	dir    string
	logger *slog.Logger
}

// NewFilePublisher returns a publisher writing into dir.
func NewFilePublisher(dir string, logger *slog.Logger) *FilePublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &FilePublisher{dir: dir, logger: logger.With("component", "file_publisher")}
}

// Dir returns the output directory.
func (p *FilePublisher) Dir() string { return p.dir }

// Publish writes <dir>/<TEAM>_<YEAR>_usage.json, replacing any previous
// report atomically.
func (p *FilePublisher) Publish(ctx context.Context, report domain.TeamUsageReport) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := EncodeReport(report)
	if err != nil {
		return "", err
	}

	path := filepath.Join(p.dir, ReportFileName(report.Team, report.Year))
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	p.logger.Debug("wrote report", "path", path, "bytes", len(data))
	return path, nil
}

// writeFileAtomic writes data to a temp file beside path and renames it into
// place, so readers never see a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
