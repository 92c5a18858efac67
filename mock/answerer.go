package mock

import (
	"context"

	"github.com/siddhant230/draftclaim"
)

var _ draftclaim.Answerer = (*Answerer)(nil)

// Answerer is a mock implementation of draftclaim.Answerer.
type Answerer struct {
	AnswerFn func(ctx context.Context, req draftclaim.AnswerRequest, stream draftclaim.StreamFunc) (string, error)
}

func (a *Answerer) Answer(ctx context.Context, req draftclaim.AnswerRequest, stream draftclaim.StreamFunc) (string, error) {
	return a.AnswerFn(ctx, req, stream)
}
