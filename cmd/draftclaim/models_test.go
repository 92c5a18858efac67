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

func TestModelsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists models with size and date", func(t *testing.T) {
		t.Parallel()

		models := &mock.ModelService{
			ListModelsFn: func(_ context.Context) ([]draftclaim.Model, error) {
				return []draftclaim.Model{
					{Name: "llama3.2", Size: 2 * 1 << 30, ModifiedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
					{Name: "mistral", Size: 400 * 1 << 20, ModifiedAt: time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: stderr,
			Models: models,
		}

		cmd := &main.ModelsCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "llama3.2")
		assert.Contains(t, output, "2.0 GB")
		assert.Contains(t, output, "2025-03-01")
		assert.Contains(t, output, "mistral")
		assert.Contains(t, output, "400 MB")
		assert.Empty(t, stderr.String())
	})

	t.Run("shows message when no models are available", func(t *testing.T) {
		t.Parallel()

		models := &mock.ModelService{
			ListModelsFn: func(_ context.Context) ([]draftclaim.Model, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: stderr,
			Models: models,
		}

		cmd := &main.ModelsCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No models available")
	})

	t.Run("returns error when the endpoint is unreachable", func(t *testing.T) {
		t.Parallel()

		models := &mock.ModelService{
			ListModelsFn: func(_ context.Context) ([]draftclaim.Model, error) {
				return nil, draftclaim.Errorf(draftclaim.EUNAVAILABLE, "cannot reach model endpoint")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: stderr,
			Models: models,
		}

		cmd := &main.ModelsCmd{}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
		assert.Contains(t, stderr.String(), "cannot reach model endpoint")
		assert.Empty(t, stdout.String())
	})
}
