package mock

import (
	"context"

	"github.com/siddhant230/draftclaim"
)

var _ draftclaim.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of draftclaim.ReportWriter.
type ReportWriter struct {
	WriteAnalysisFn func(ctx context.Context, report *draftclaim.AnalysisReport) (string, error)
	WriteQAFn       func(ctx context.Context, report *draftclaim.QAReport) (string, error)
}

func (w *ReportWriter) WriteAnalysis(ctx context.Context, report *draftclaim.AnalysisReport) (string, error) {
	return w.WriteAnalysisFn(ctx, report)
}

func (w *ReportWriter) WriteQA(ctx context.Context, report *draftclaim.QAReport) (string, error) {
	return w.WriteQAFn(ctx, report)
}
