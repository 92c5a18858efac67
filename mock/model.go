package mock

import (
	"context"

	"github.com/siddhant230/draftclaim"
)

var _ draftclaim.ModelService = (*ModelService)(nil)

// ModelService is a mock implementation of draftclaim.ModelService.
type ModelService struct {
	ListModelsFn func(ctx context.Context) ([]draftclaim.Model, error)
}

func (s *ModelService) ListModels(ctx context.Context) ([]draftclaim.Model, error) {
	return s.ListModelsFn(ctx)
}
