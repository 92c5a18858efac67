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

func TestHistoryCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists runs with their outcome", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, filter draftclaim.RunFilter) ([]*draftclaim.Run, error) {
				assert.Equal(t, 20, filter.Limit)
				return []*draftclaim.Run{
					{
						ID:            "run-2",
						Kind:          draftclaim.RunVerification,
						Model:         "llama3.2",
						QuestionCount: 3,
						ApprovedCount: 2,
						CreatedAt:     time.Date(2025, 3, 2, 10, 30, 0, 0, time.UTC),
					},
					{
						ID:        "run-1",
						Kind:      draftclaim.RunAnalysis,
						Model:     "mistral",
						CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
					},
				}, nil
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

		cmd := &main.HistoryCmd{Limit: 20}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "run-2")
		assert.Contains(t, output, "2025-03-02 10:30")
		assert.Contains(t, output, "2/3 approved")
		assert.Contains(t, output, "run-1")
		assert.Contains(t, output, "analysis")
		assert.NotContains(t, output, "0/0 approved")
		assert.Empty(t, stderr.String())
	})

	t.Run("filters by kind", func(t *testing.T) {
		t.Parallel()

		var received draftclaim.RunFilter
		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, filter draftclaim.RunFilter) ([]*draftclaim.Run, error) {
				received = filter
				return nil, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Runs:   runs,
		}

		cmd := &main.HistoryCmd{Kind: "verification", Limit: 5}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, received.Kind)
		assert.Equal(t, draftclaim.RunVerification, *received.Kind)
		assert.Equal(t, 5, received.Limit)
	})

	t.Run("shows message when no runs exist", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, _ draftclaim.RunFilter) ([]*draftclaim.Run, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs:   runs,
		}

		cmd := &main.HistoryCmd{Limit: 20}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No runs archived yet")
	})

	t.Run("rejects an unknown kind", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		cmd := &main.HistoryCmd{Kind: "experiment", Limit: 20}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, draftclaim.EINVALID, draftclaim.ErrorCode(err))
		assert.Contains(t, stderr.String(), `unknown run kind "experiment"`)
	})

	t.Run("returns error when find fails", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, _ draftclaim.RunFilter) ([]*draftclaim.Run, error) {
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

		cmd := &main.HistoryCmd{Limit: 20}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
