package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/siddhant230/draftclaim"
)

// Ensure LoggingReportWriter implements draftclaim.ReportWriter.
var _ draftclaim.ReportWriter = (*LoggingReportWriter)(nil)

// LoggingReportWriter wraps a ReportWriter with export logging.
type LoggingReportWriter struct {
	next   draftclaim.ReportWriter
	logger *slog.Logger
}

// NewLoggingReportWriter creates a new LoggingReportWriter.
func NewLoggingReportWriter(next draftclaim.ReportWriter, logger *slog.Logger) *LoggingReportWriter {
	return &LoggingReportWriter{next: next, logger: logger}
}

// WriteAnalysis delegates to the wrapped writer and logs the operation.
func (w *LoggingReportWriter) WriteAnalysis(ctx context.Context, report *draftclaim.AnalysisReport) (path string, err error) {
	defer func(begin time.Time) {
		w.logger.Info("analysis report export",
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteAnalysis(ctx, report)
}

// WriteQA delegates to the wrapped writer and logs the operation.
func (w *LoggingReportWriter) WriteQA(ctx context.Context, report *draftclaim.QAReport) (path string, err error) {
	defer func(begin time.Time) {
		w.logger.Info("qa report export",
			"path", path,
			"pairs", len(report.Pairs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteQA(ctx, report)
}
