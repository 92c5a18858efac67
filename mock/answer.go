package mock

import (
	"context"

	"github.com/siddhant230/draftclaim"
)

var _ draftclaim.AnswerService = (*AnswerService)(nil)

// AnswerService is a mock implementation of draftclaim.AnswerService.
type AnswerService struct {
	CreateAnswerFn  func(ctx context.Context, answer *draftclaim.AnswerRecord) error
	CreateAnswersFn func(ctx context.Context, answers []*draftclaim.AnswerRecord) error
	FindAnswersFn   func(ctx context.Context, filter draftclaim.AnswerFilter) ([]*draftclaim.AnswerRecord, error)
}

func (s *AnswerService) CreateAnswer(ctx context.Context, answer *draftclaim.AnswerRecord) error {
	return s.CreateAnswerFn(ctx, answer)
}

func (s *AnswerService) CreateAnswers(ctx context.Context, answers []*draftclaim.AnswerRecord) error {
	return s.CreateAnswersFn(ctx, answers)
}

func (s *AnswerService) FindAnswers(ctx context.Context, filter draftclaim.AnswerFilter) ([]*draftclaim.AnswerRecord, error) {
	return s.FindAnswersFn(ctx, filter)
}
