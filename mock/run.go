package mock

import (
	"context"

	"github.com/siddhant230/draftclaim"
)

var _ draftclaim.RunService = (*RunService)(nil)

// RunService is a mock implementation of draftclaim.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *draftclaim.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*draftclaim.Run, error)
	FindRunsFn    func(ctx context.Context, filter draftclaim.RunFilter) ([]*draftclaim.Run, error)
	UpdateRunFn   func(ctx context.Context, id string, upd draftclaim.RunUpdate) (*draftclaim.Run, error)
	DeleteRunFn   func(ctx context.Context, id string) error
}

func (s *RunService) CreateRun(ctx context.Context, run *draftclaim.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*draftclaim.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter draftclaim.RunFilter) ([]*draftclaim.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) UpdateRun(ctx context.Context, id string, upd draftclaim.RunUpdate) (*draftclaim.Run, error) {
	return s.UpdateRunFn(ctx, id, upd)
}

func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}
