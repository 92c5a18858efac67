// Package slog provides logging decorators for draftclaim services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/siddhant230/draftclaim"
)

// Ensure LoggingAnswerer implements draftclaim.Answerer.
var _ draftclaim.Answerer = (*LoggingAnswerer)(nil)

// LoggingAnswerer wraps an Answerer with generation logging.
type LoggingAnswerer struct {
	next   draftclaim.Answerer
	logger *slog.Logger
}

// NewLoggingAnswerer creates a new LoggingAnswerer.
func NewLoggingAnswerer(next draftclaim.Answerer, logger *slog.Logger) *LoggingAnswerer {
	return &LoggingAnswerer{next: next, logger: logger}
}

// Answer delegates to the wrapped Answerer and logs the operation.
func (a *LoggingAnswerer) Answer(ctx context.Context, req draftclaim.AnswerRequest, stream draftclaim.StreamFunc) (text string, err error) {
	defer func(begin time.Time) {
		a.logger.Info("answer generation",
			"model", req.Model,
			"retry", req.RejectedAnswer != "",
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Answer(ctx, req, stream)
}

// Ensure LoggingAnalyzer implements draftclaim.Analyzer.
var _ draftclaim.Analyzer = (*LoggingAnalyzer)(nil)

// LoggingAnalyzer wraps an Analyzer with generation logging.
type LoggingAnalyzer struct {
	next   draftclaim.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next draftclaim.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze delegates to the wrapped Analyzer and logs the operation.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, req draftclaim.AnalysisRequest, stream draftclaim.StreamFunc) (text string, err error) {
	defer func(begin time.Time) {
		a.logger.Info("claims analysis",
			"model", req.Model,
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Analyze(ctx, req, stream)
}

// Ensure LoggingModelService implements draftclaim.ModelService.
var _ draftclaim.ModelService = (*LoggingModelService)(nil)

// LoggingModelService wraps a ModelService with listing logging.
type LoggingModelService struct {
	next   draftclaim.ModelService
	logger *slog.Logger
}

// NewLoggingModelService creates a new LoggingModelService.
func NewLoggingModelService(next draftclaim.ModelService, logger *slog.Logger) *LoggingModelService {
	return &LoggingModelService{next: next, logger: logger}
}

// ListModels delegates to the wrapped service and logs the operation.
func (s *LoggingModelService) ListModels(ctx context.Context) (models []draftclaim.Model, err error) {
	defer func(begin time.Time) {
		s.logger.Info("model listing",
			"count", len(models),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListModels(ctx)
}
