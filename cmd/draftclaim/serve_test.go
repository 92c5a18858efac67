package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/siddhant230/draftclaim"
	main "github.com/siddhant230/draftclaim/cmd/draftclaim"
	"github.com/siddhant230/draftclaim/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("serves until the context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    ctx,
			Stdout: stdout,
			Stderr: stderr,
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
			Reader: testReader(),
			Models: &mock.ModelService{},
		}

		cmd := &main.ServeCmd{Addr: "127.0.0.1:0"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Serving the review interface on http://127.0.0.1:")
		assert.Contains(t, stdout.String(), "Shutting down.")
		assert.Empty(t, stderr.String())
	})

	t.Run("returns error when the address cannot be bound", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		}

		cmd := &main.ServeCmd{Addr: "256.256.256.256:1"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, draftclaim.EUNAVAILABLE, draftclaim.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}
