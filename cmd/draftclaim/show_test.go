package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/siddhant230/draftclaim"
	main "github.com/siddhant230/draftclaim/cmd/draftclaim"
	"github.com/siddhant230/draftclaim/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("shows a verification run with its answers", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, id string) (*draftclaim.Run, error) {
				require.Equal(t, "run-1", id)
				return &draftclaim.Run{
					ID:             "run-1",
					Kind:           draftclaim.RunVerification,
					Model:          "llama3.2",
					DisclosurePath: "/docs/disclosure.docx",
					ClaimsPath:     "/docs/claims.docx",
					DisclosureHash: "hash-disclosure",
					ClaimsHash:     "hash-claims",
					QuestionCount:  2,
					ApprovedCount:  2,
					ReportPath:     "/out/qa_report.docx",
					CreatedAt:      time.Date(2025, 3, 2, 10, 30, 0, 0, time.UTC),
				}, nil
			},
		}

		answers := &mock.AnswerService{
			FindAnswersFn: func(_ context.Context, filter draftclaim.AnswerFilter) ([]*draftclaim.AnswerRecord, error) {
				require.NotNil(t, filter.RunID)
				assert.Equal(t, "run-1", *filter.RunID)
				return []*draftclaim.AnswerRecord{
					{RunID: "run-1", QuestionIndex: 0, Question: "Is the threshold configurable?", Answer: "Yes, via the mobile app.", Context: "see section 2"},
					{RunID: "run-1", QuestionIndex: 1, Question: "Does the sensor recalibrate?", Answer: "After every power cycle."},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     testContext(),
			Stdout:  stdout,
			Stderr:  stderr,
			Runs:    runs,
			Answers: answers,
		}

		cmd := &main.ShowCmd{ID: "run-1"}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "Run run-1 (verification)")
		assert.Contains(t, output, "llama3.2")
		assert.Contains(t, output, "/docs/disclosure.docx (hash-disclosure)")
		assert.Contains(t, output, "Approved:   2 of 2")
		assert.Contains(t, output, "Report:     /out/qa_report.docx")
		assert.Contains(t, output, "1. Is the threshold configurable?")
		assert.Contains(t, output, "Context: see section 2")
		assert.Contains(t, output, "Yes, via the mobile app.")
		assert.Contains(t, output, "2. Does the sensor recalibrate?")
		assert.Empty(t, stderr.String())
	})

	t.Run("shows an analysis run without answers", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, _ string) (*draftclaim.Run, error) {
				return &draftclaim.Run{
					ID:             "run-9",
					Kind:           draftclaim.RunAnalysis,
					Model:          "mistral",
					DisclosurePath: "/docs/disclosure.docx",
					ClaimsPath:     "/docs/claims.docx",
					ReportPath:     "/out/analysis_report.docx",
					CreatedAt:      time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
				}, nil
			},
		}

		stdout := &bytes.Buffer{}

		// No Answers service wired: the command must not consult it for
		// an analysis run.
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs:   runs,
		}

		cmd := &main.ShowCmd{ID: "run-9"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Run run-9 (analysis)")
		assert.NotContains(t, stdout.String(), "Approved:")
	})

	t.Run("returns error when run not found", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, id string) (*draftclaim.Run, error) {
				return nil, draftclaim.Errorf(draftclaim.ENOTFOUND, "run %q not found", id)
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: stderr,
			Runs:   runs,
		}

		cmd := &main.ShowCmd{ID: "missing"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), `run "missing" not found`)
		assert.Contains(t, stderr.String(), "draftclaim history")
		assert.Empty(t, stdout.String())
	})

	t.Run("returns error when find fails", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, _ string) (*draftclaim.Run, error) {
				return nil, draftclaim.Errorf(draftclaim.EINTERNAL, "database error")
			},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Runs:   runs,
		}

		cmd := &main.ShowCmd{ID: "run-1"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
