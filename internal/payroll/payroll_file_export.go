package payroll

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	payrollerrors "hris-payroll/internal/payroll/errors"
	"hris-payroll/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidRequestID = apperror.InvalidField("Request Id")

// FileExporter renders reports into a directory, one workbook per request.
type FileExporter struct {
	builder ReportBuilder
	dir     string
	logger  *zap.Logger
}

func NewFileExporter(builder ReportBuilder, dir string, logger *zap.Logger) *FileExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileExporter{builder: builder, dir: dir, logger: logger.Named("payroll.file_export")}
}

// ExportToFile writes payroll-YYYY-MM-<requestID>.xlsx and returns its path.
// The file appears only once it is complete.
func (e *FileExporter) ExportToFile(ctx context.Context, requestID string, month, year int) (string, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return "", ErrInvalidRequestID.WithCause(err)
	}

	report, err := e.builder.BuildReport(ctx, month, year)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", payrollerrors.ErrExportFailed.WithCause(err)
	}

	tmp, err := os.CreateTemp(e.dir, ".payroll-*.xlsx.tmp")
	if err != nil {
		return "", payrollerrors.ErrExportFailed.WithCause(err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteReportXLSX(tmp, report); err != nil {
		tmp.Close()
		return "", payrollerrors.ErrExportFailed.WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		return "", payrollerrors.ErrExportFailed.WithCause(err)
	}

	path := filepath.Join(e.dir, fmt.Sprintf("payroll-%04d-%02d-%s.xlsx", year, month, requestID))
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", payrollerrors.ErrExportFailed.WithCause(err)
	}

	e.logger.Info("payroll report written",
		zap.String("path", path),
		zap.Int("employees", report.Totals.Employees),
		zap.Int("failed", report.Totals.Failed),
	)
	return path, nil
}
