package mock

import (
	"context"

	"github.com/siddhant230/draftclaim"
)

var _ draftclaim.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of draftclaim.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, req draftclaim.AnalysisRequest, stream draftclaim.StreamFunc) (string, error)
}

func (a *Analyzer) Analyze(ctx context.Context, req draftclaim.AnalysisRequest, stream draftclaim.StreamFunc) (string, error) {
	return a.AnalyzeFn(ctx, req, stream)
}
