package main_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/siddhant230/draftclaim"
	main "github.com/siddhant230/draftclaim/cmd/draftclaim"
	"github.com/siddhant230/draftclaim/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingAnswerer answers "answer 1", "answer 2", ... and records each
// request.
func countingAnswerer() (*mock.Answerer, *[]draftclaim.AnswerRequest) {
	requests := &[]draftclaim.AnswerRequest{}
	answerer := &mock.Answerer{
		AnswerFn: func(_ context.Context, req draftclaim.AnswerRequest, stream draftclaim.StreamFunc) (string, error) {
			*requests = append(*requests, req)
			text := fmt.Sprintf("answer %d", len(*requests))
			stream(text)
			return text, nil
		},
	}
	return answerer, requests
}

func TestVerifyCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("walks questions to approval and archives the run", func(t *testing.T) {
		t.Parallel()

		answerer, requests := countingAnswerer()

		var wrote *draftclaim.QAReport
		reports := &mock.ReportWriter{
			WriteQAFn: func(_ context.Context, report *draftclaim.QAReport) (string, error) {
				wrote = report
				return "/out/qa_report.docx", nil
			},
		}

		var created *draftclaim.Run
		runs := &mock.RunService{
			CreateRunFn: func(_ context.Context, run *draftclaim.Run) error {
				run.ID = "run-1"
				created = run
				return nil
			},
		}

		var archived []*draftclaim.AnswerRecord
		answers := &mock.AnswerService{
			CreateAnswersFn: func(_ context.Context, records []*draftclaim.AnswerRecord) error {
				archived = records
				return nil
			},
		}

		// Question 1: context, approve. Question 2: no context, reject,
		// then more context and approve.
		stdin := strings.NewReader("see section 2\nyes\n\nno\nfocus on recalibration\nyes\n")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      testContext(),
			Stdin:    stdin,
			Stdout:   stdout,
			Stderr:   stderr,
			Model:    "llama3.2",
			Reader:   testReader(),
			Answerer: answerer,
			Reports:  reports,
			Runs:     runs,
			Answers:  answers,
		}

		cmd := &main.VerifyCmd{
			Disclosure: "/docs/disclosure.docx",
			Claims:     "/docs/claims.docx",
		}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "Verifying 2 questions with llama3.2")
		assert.Contains(t, output, "Question 1 of 2: Is the threshold configurable?")
		assert.Contains(t, output, "Claim: a configurable threshold")
		assert.Contains(t, output, "Question 2 of 2: Does the sensor recalibrate after power loss?")
		assert.Contains(t, output, "Previous answer rejected")
		assert.Contains(t, output, "answer 3")
		assert.Contains(t, output, "Verification complete: 2 of 2 answers approved.")
		assert.Contains(t, output, "Report written to /out/qa_report.docx")
		assert.Contains(t, output, "Archived as run run-1")
		assert.Empty(t, stderr.String())

		require.Len(t, *requests, 3)
		first := (*requests)[0]
		assert.Equal(t, "Is the threshold configurable?", first.Question)
		assert.Equal(t, "body of /docs/disclosure.docx", first.Disclosure)
		assert.Equal(t, "see section 2", first.UserContext)
		assert.Equal(t, "llama3.2", first.Model)
		retry := (*requests)[2]
		assert.Equal(t, "answer 2", retry.RejectedAnswer)
		assert.Equal(t, "focus on recalibration", retry.UserContext)

		require.NotNil(t, wrote)
		require.Len(t, wrote.Pairs, 2)
		assert.Equal(t, "answer 1", wrote.Pairs[0].Answer)
		assert.Equal(t, "answer 3", wrote.Pairs[1].Answer)

		require.NotNil(t, created)
		assert.Equal(t, draftclaim.RunVerification, created.Kind)
		assert.Equal(t, "/docs/disclosure.docx", created.DisclosurePath)
		assert.Equal(t, "hash-claims", created.ClaimsHash)
		assert.Equal(t, 2, created.QuestionCount)
		assert.Equal(t, 2, created.ApprovedCount)
		assert.Equal(t, "/out/qa_report.docx", created.ReportPath)

		require.Len(t, archived, 2)
		assert.Equal(t, "run-1", archived[0].RunID)
		assert.Equal(t, 0, archived[0].QuestionIndex)
		assert.Equal(t, "answer 1", archived[0].Answer)
		assert.Equal(t, "see section 2", archived[0].Context)
		assert.Equal(t, 1, archived[1].QuestionIndex)
		assert.Equal(t, "answer 3", archived[1].Answer)
	})

	t.Run("re-prompts on an invalid decision", func(t *testing.T) {
		t.Parallel()

		answerer, _ := countingAnswerer()

		reports := &mock.ReportWriter{
			WriteQAFn: func(_ context.Context, _ *draftclaim.QAReport) (string, error) {
				return "/out/qa_report.docx", nil
			},
		}
		runs := &mock.RunService{
			CreateRunFn: func(_ context.Context, run *draftclaim.Run) error {
				run.ID = "run-1"
				return nil
			},
		}
		answers := &mock.AnswerService{
			CreateAnswersFn: func(_ context.Context, _ []*draftclaim.AnswerRecord) error {
				return nil
			},
		}

		// The decision is asked again until it parses; "  YES " counts.
		stdin := strings.NewReader("\nmaybe\n  YES \n\nyes\n")
		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      testContext(),
			Stdin:    stdin,
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Model:    "llama3.2",
			Reader:   testReader(),
			Answerer: answerer,
			Reports:  reports,
			Runs:     runs,
			Answers:  answers,
		}

		cmd := &main.VerifyCmd{
			Disclosure: "/docs/disclosure.docx",
			Claims:     "/docs/claims.docx",
		}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `Please answer "yes" or "no".`)
		assert.Contains(t, stdout.String(), "Verification complete: 2 of 2 answers approved.")
	})

	t.Run("returns error when the claims document has no comments", func(t *testing.T) {
		t.Parallel()

		reader := &mock.DocumentReader{
			ReadDocumentFn: func(_ context.Context, path string, role draftclaim.DocumentRole) (*draftclaim.Document, error) {
				return &draftclaim.Document{Role: role, Path: path, Text: "text"}, nil
			},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdin:  strings.NewReader(""),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Model:  "llama3.2",
			Reader: reader,
		}

		cmd := &main.VerifyCmd{
			Disclosure: "/docs/disclosure.docx",
			Claims:     "/docs/claims.docx",
		}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, draftclaim.EINVALID, draftclaim.ErrorCode(err))
		assert.Contains(t, stderr.String(), "no review comments found in /docs/claims.docx")
	})

	t.Run("returns error when input ends early", func(t *testing.T) {
		t.Parallel()

		answerer, _ := countingAnswerer()

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      testContext(),
			Stdin:    strings.NewReader(""),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Model:    "llama3.2",
			Reader:   testReader(),
			Answerer: answerer,
		}

		cmd := &main.VerifyCmd{
			Disclosure: "/docs/disclosure.docx",
			Claims:     "/docs/claims.docx",
		}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "input ended before verification completed")
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("retries the question when generation fails", func(t *testing.T) {
		t.Parallel()

		// The first generation fails; the question comes back around
		// and nothing from the failed attempt reaches the report.
		calls := 0
		answerer := &mock.Answerer{
			AnswerFn: func(_ context.Context, _ draftclaim.AnswerRequest, stream draftclaim.StreamFunc) (string, error) {
				calls++
				if calls == 1 {
					return "", draftclaim.Errorf(draftclaim.EUNAVAILABLE, "model endpoint unreachable")
				}
				text := fmt.Sprintf("answer %d", calls)
				stream(text)
				return text, nil
			},
		}

		var wrote *draftclaim.QAReport
		reports := &mock.ReportWriter{
			WriteQAFn: func(_ context.Context, report *draftclaim.QAReport) (string, error) {
				wrote = report
				return "/out/qa_report.docx", nil
			},
		}
		runs := &mock.RunService{
			CreateRunFn: func(_ context.Context, run *draftclaim.Run) error {
				run.ID = "run-1"
				return nil
			},
		}
		answers := &mock.AnswerService{
			CreateAnswersFn: func(_ context.Context, _ []*draftclaim.AnswerRecord) error {
				return nil
			},
		}

		stdin := strings.NewReader("\nmore detail\nyes\n\nyes\n")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      testContext(),
			Stdin:    stdin,
			Stdout:   stdout,
			Stderr:   stderr,
			Model:    "llama3.2",
			Reader:   testReader(),
			Answerer: answerer,
			Reports:  reports,
			Runs:     runs,
			Answers:  answers,
		}

		cmd := &main.VerifyCmd{
			Disclosure: "/docs/disclosure.docx",
			Claims:     "/docs/claims.docx",
		}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "model endpoint unreachable")

		output := stdout.String()
		assert.Contains(t, output, "No answer was recorded.")
		assert.Equal(t, 2, strings.Count(output, "Question 1 of 2: "))
		assert.Contains(t, output, "Verification complete: 2 of 2 answers approved.")

		require.NotNil(t, wrote)
		require.Len(t, wrote.Pairs, 2)
		assert.Equal(t, "answer 2", wrote.Pairs[0].Answer)
		assert.Equal(t, "more detail", wrote.Pairs[0].Context)
	})

	t.Run("stops retrying when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		answerer := &mock.Answerer{
			AnswerFn: func(_ context.Context, _ draftclaim.AnswerRequest, _ draftclaim.StreamFunc) (string, error) {
				return "", draftclaim.Errorf(draftclaim.EUNAVAILABLE, "model endpoint unreachable")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      ctx,
			Stdin:    strings.NewReader("\n\n\n"),
			Stdout:   stdout,
			Stderr:   stderr,
			Model:    "llama3.2",
			Reader:   testReader(),
			Answerer: answerer,
		}

		cmd := &main.VerifyCmd{
			Disclosure: "/docs/disclosure.docx",
			Claims:     "/docs/claims.docx",
		}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, draftclaim.EUNAVAILABLE, draftclaim.ErrorCode(err))
		assert.Contains(t, stderr.String(), "model endpoint unreachable")
		assert.Equal(t, 1, strings.Count(stdout.String(), "Question 1 of 2: "))
	})
}
