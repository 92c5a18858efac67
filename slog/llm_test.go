package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/siddhant230/draftclaim"
	"github.com/siddhant230/draftclaim/mock"
	dcslog "github.com/siddhant230/draftclaim/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingAnswerer_Answer(t *testing.T) {
	t.Parallel()

	t.Run("logs generation with model and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Answerer{
			AnswerFn: func(ctx context.Context, req draftclaim.AnswerRequest, stream draftclaim.StreamFunc) (string, error) {
				return "Yes, the disclosure covers this.", nil
			},
		}

		answerer := dcslog.NewLoggingAnswerer(inner, logger)
		text, err := answerer.Answer(context.Background(), draftclaim.AnswerRequest{
			Question:   "Is this covered?",
			Disclosure: "A widget.",
			Model:      "llama3.2",
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, "Yes, the disclosure covers this.", text)
		output := buf.String()
		assert.Contains(t, output, "answer generation")
		assert.Contains(t, output, "model=llama3.2")
		assert.Contains(t, output, "retry=false")
		assert.Contains(t, output, "chars=32")
		assert.Contains(t, output, "duration=")
	})

	t.Run("marks retries", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Answerer{
			AnswerFn: func(ctx context.Context, req draftclaim.AnswerRequest, stream draftclaim.StreamFunc) (string, error) {
				return "A better answer.", nil
			},
		}

		answerer := dcslog.NewLoggingAnswerer(inner, logger)
		_, err := answerer.Answer(context.Background(), draftclaim.AnswerRequest{
			Question:       "Is this covered?",
			Disclosure:     "A widget.",
			RejectedAnswer: "A bad answer.",
			Model:          "llama3.2",
		}, nil)

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "retry=true")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Answerer{
			AnswerFn: func(ctx context.Context, req draftclaim.AnswerRequest, stream draftclaim.StreamFunc) (string, error) {
				return "", errors.New("connection refused")
			},
		}

		answerer := dcslog.NewLoggingAnswerer(inner, logger)
		_, err := answerer.Answer(context.Background(), draftclaim.AnswerRequest{
			Question:   "Is this covered?",
			Disclosure: "A widget.",
			Model:      "llama3.2",
		}, nil)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "answer generation")
		assert.Contains(t, output, "err=\"connection refused\"")
	})
}

func TestLoggingAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("logs analysis with model and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Analyzer{
			AnalyzeFn: func(ctx context.Context, req draftclaim.AnalysisRequest, stream draftclaim.StreamFunc) (string, error) {
				return "### 1. Claim Summary", nil
			},
		}

		analyzer := dcslog.NewLoggingAnalyzer(inner, logger)
		_, err := analyzer.Analyze(context.Background(), draftclaim.AnalysisRequest{
			Disclosure: "A widget.",
			Claims:     "1. A widget.",
			Model:      "mistral",
		}, nil)

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "claims analysis")
		assert.Contains(t, output, "model=mistral")
		assert.Contains(t, output, "duration=")
	})
}

func TestLoggingModelService_ListModels(t *testing.T) {
	t.Parallel()

	t.Run("logs listing with count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ModelService{
			ListModelsFn: func(ctx context.Context) ([]draftclaim.Model, error) {
				return []draftclaim.Model{{Name: "llama3.2"}, {Name: "mistral"}}, nil
			},
		}

		svc := dcslog.NewLoggingModelService(inner, logger)
		models, err := svc.ListModels(context.Background())

		require.NoError(t, err)
		assert.Len(t, models, 2)
		output := buf.String()
		assert.Contains(t, output, "model listing")
		assert.Contains(t, output, "count=2")
	})
}
