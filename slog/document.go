package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/siddhant230/draftclaim"
)

// Ensure LoggingDocumentReader implements draftclaim.DocumentReader.
var _ draftclaim.DocumentReader = (*LoggingDocumentReader)(nil)

// LoggingDocumentReader wraps a DocumentReader with load logging.
type LoggingDocumentReader struct {
	next   draftclaim.DocumentReader
	logger *slog.Logger
}

// NewLoggingDocumentReader creates a new LoggingDocumentReader.
func NewLoggingDocumentReader(next draftclaim.DocumentReader, logger *slog.Logger) *LoggingDocumentReader {
	return &LoggingDocumentReader{next: next, logger: logger}
}

// ReadDocument delegates to the wrapped reader and logs the operation.
func (r *LoggingDocumentReader) ReadDocument(ctx context.Context, path string, role draftclaim.DocumentRole) (doc *draftclaim.Document, err error) {
	defer func(begin time.Time) {
		var chars, comments int
		if doc != nil {
			chars = len(doc.Text)
			comments = len(doc.Comments)
		}
		r.logger.Info("document read",
			"path", path,
			"role", string(role),
			"chars", chars,
			"comments", comments,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ReadDocument(ctx, path, role)
}
