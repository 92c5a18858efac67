package draftclaim

import (
	"context"
	"strings"
)

// StreamFunc receives incremental chunks of model output as they are
// generated. Implementations of Answerer and Analyzer invoke it
// synchronously, in order; a nil StreamFunc disables streaming. The
// complete response is always returned by the generating call itself,
// never assembled by the callback.
type StreamFunc func(delta string)

// AnswerRequest carries the inputs for answering one verification
// question. UserContext is optional reviewer guidance; RejectedAnswer is
// the previous attempt when the reviewer asked for a retry.
type AnswerRequest struct {
	Question       string
	Disclosure     string
	AdditionalInfo string
	UserContext    string
	RejectedAnswer string
	Model          string
}

// Validate returns an error if the request is missing a question, the
// disclosure grounding, or a model name.
func (r AnswerRequest) Validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return Errorf(EINVALID, "question required")
	}
	if strings.TrimSpace(r.Disclosure) == "" {
		return Errorf(EINVALID, "invention disclosure text required")
	}
	if r.Model == "" {
		return Errorf(EINVALID, "model required")
	}
	return nil
}

// Answerer generates answers to verification questions grounded in the
// invention disclosure.
type Answerer interface {
	// Answer generates a single answer. Deltas are forwarded to stream
	// as they arrive and the aggregated text is returned once generation
	// finishes. Returns EUNAVAILABLE when the model endpoint cannot be
	// reached or produces no text, EINVALID for a malformed request.
	Answer(ctx context.Context, req AnswerRequest, stream StreamFunc) (string, error)
}

// AnalysisRequest carries the inputs for a one-shot comparative analysis
// of the patent claims against the invention disclosure.
type AnalysisRequest struct {
	Disclosure     string
	AdditionalInfo string
	Claims         string
	Model          string
}

// Validate returns an error if the request is missing the disclosure,
// the claims, or a model name.
func (r AnalysisRequest) Validate() error {
	if strings.TrimSpace(r.Disclosure) == "" {
		return Errorf(EINVALID, "invention disclosure text required")
	}
	if strings.TrimSpace(r.Claims) == "" {
		return Errorf(EINVALID, "patent claims text required")
	}
	if r.Model == "" {
		return Errorf(EINVALID, "model required")
	}
	return nil
}

// Analyzer produces a structured comparison of patent claims against an
// invention disclosure.
type Analyzer interface {
	// Analyze generates the analysis text. Streaming and error semantics
	// match Answerer.Answer.
	Analyze(ctx context.Context, req AnalysisRequest, stream StreamFunc) (string, error)
}
