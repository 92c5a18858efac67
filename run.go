package draftclaim

import (
	"context"
	"time"
)

// RunKind distinguishes the two kinds of archived runs.
type RunKind string

// Run kinds.
const (
	RunAnalysis     RunKind = "analysis"
	RunVerification RunKind = "verification"
)

// Run is an archived record of one analysis or verification pass over a
// document pair. Content hashes identify the exact inputs so later runs
// against the same files can be correlated.
type Run struct {
	ID             string    `json:"id"`
	Kind           RunKind   `json:"kind"`
	Model          string    `json:"model"`
	DisclosurePath string    `json:"disclosurePath"`
	ClaimsPath     string    `json:"claimsPath"`
	DisclosureHash string    `json:"disclosureHash"`
	ClaimsHash     string    `json:"claimsHash"`
	QuestionCount  int       `json:"questionCount"`
	ApprovedCount  int       `json:"approvedCount"`
	ReportPath     string    `json:"reportPath"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	switch r.Kind {
	case RunAnalysis, RunVerification:
	default:
		return Errorf(EINVALID, "unknown run kind %q", r.Kind)
	}
	if r.Model == "" {
		return Errorf(EINVALID, "run model required")
	}
	if r.DisclosurePath == "" {
		return Errorf(EINVALID, "run disclosure path required")
	}
	if r.ClaimsPath == "" {
		return Errorf(EINVALID, "run claims path required")
	}
	return nil
}

// RunService represents a service for managing the run archive.
type RunService interface {
	// CreateRun records a new run.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// UpdateRun updates an existing run.
	// Returns ENOTFOUND if run does not exist.
	UpdateRun(ctx context.Context, id string, upd RunUpdate) (*Run, error)

	// DeleteRun permanently removes a run and its archived answers.
	// Returns ENOTFOUND if run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID    *string  `json:"id"`
	Kind  *RunKind `json:"kind"`
	Model *string  `json:"model"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RunUpdate represents fields that can be updated on a run.
type RunUpdate struct {
	ApprovedCount *int    `json:"approvedCount"`
	ReportPath    *string `json:"reportPath"`
}

// AnswerRecord is one approved answer archived with its run.
type AnswerRecord struct {
	ID            string    `json:"id"`
	RunID         string    `json:"runId"`
	QuestionIndex int       `json:"questionIndex"`
	Question      string    `json:"question"`
	Answer        string    `json:"answer"`
	Context       string    `json:"context,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Validate returns an error if the record contains invalid fields.
func (a *AnswerRecord) Validate() error {
	if a.RunID == "" {
		return Errorf(EINVALID, "answer run ID required")
	}
	if a.QuestionIndex < 0 {
		return Errorf(EINVALID, "answer question index must not be negative")
	}
	if a.Question == "" {
		return Errorf(EINVALID, "answer question required")
	}
	if a.Answer == "" {
		return Errorf(EINVALID, "answer text required")
	}
	return nil
}

// AnswerService represents a service for archiving approved answers.
type AnswerService interface {
	// CreateAnswer archives a single answer.
	CreateAnswer(ctx context.Context, answer *AnswerRecord) error

	// CreateAnswers archives a batch of answers atomically.
	CreateAnswers(ctx context.Context, answers []*AnswerRecord) error

	// FindAnswers retrieves archived answers matching the filter,
	// ordered by question index.
	FindAnswers(ctx context.Context, filter AnswerFilter) ([]*AnswerRecord, error)
}

// AnswerFilter represents a filter for FindAnswers.
type AnswerFilter struct {
	RunID *string `json:"runId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
