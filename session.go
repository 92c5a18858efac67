package draftclaim

import (
	"context"
	"strings"
)

// SessionState identifies where a verification session is in its
// turn-by-turn lifecycle.
type SessionState int

// Session states.
const (
	// StateIdle means no question list has been loaded. Sessions
	// returned by NewSession never start here; the zero value of the
	// type reports it so callers can track "no session yet".
	StateIdle SessionState = iota

	// StateAwaitingContext means the current question is presented and
	// the session is waiting for Submit, optionally with reviewer
	// context.
	StateAwaitingContext

	// StateAwaitingDecision means a generated answer is pending the
	// reviewer's approve or reject decision.
	StateAwaitingDecision

	// StateComplete means every question has an approved answer.
	StateComplete
)

// String returns the state name.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingContext:
		return "awaiting_context"
	case StateAwaitingDecision:
		return "awaiting_decision"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// Decision is the reviewer's verdict on a generated answer.
type Decision int

// Decisions.
const (
	DecisionApprove Decision = iota + 1
	DecisionReject
)

// ParseDecision interprets reviewer input as a decision. The input must
// be exactly "yes" or "no" after trimming surrounding whitespace,
// compared case-insensitively. Anything else, blank input included,
// returns EINVALID; callers must treat that as a no-op and re-prompt.
func ParseDecision(input string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "yes":
		return DecisionApprove, nil
	case "no":
		return DecisionReject, nil
	}
	return 0, Errorf(EINVALID, "decision must be yes or no")
}

// AttemptStatus tracks the review status of a generated answer.
type AttemptStatus string

// Attempt statuses.
const (
	AttemptPending  AttemptStatus = "pending"
	AttemptApproved AttemptStatus = "approved"
	AttemptRejected AttemptStatus = "rejected"
)

// Attempt is one generated answer to a question together with the
// reviewer context it was generated under.
type Attempt struct {
	QuestionIndex int           `json:"questionIndex"`
	Text          string        `json:"text"`
	Context       string        `json:"context,omitempty"`
	Status        AttemptStatus `json:"status"`
}

// SessionConfig carries the inputs for a new verification session.
type SessionConfig struct {
	Questions      []Question
	Disclosure     string
	AdditionalInfo string
	Model          string
	Answerer       Answerer
}

// Session drives the sequential question verification loop: one question
// at a time, one answer per submission, every answer gated by an explicit
// reviewer decision before the session moves on. A Session is not safe
// for concurrent use; the single reviewer serializes all mutations.
type Session struct {
	questions  []Question
	disclosure string
	additional string
	model      string
	answerer   Answerer

	state        SessionState
	current      int
	pending      *Attempt
	lastRejected *Attempt
	approved     map[int]Attempt
}

// NewSession starts a session positioned on the first question. Returns
// EINVALID when the config carries no questions, no disclosure text, or
// no answerer.
func NewSession(cfg SessionConfig) (*Session, error) {
	if len(cfg.Questions) == 0 {
		return nil, Errorf(EINVALID, "no questions to verify")
	}
	if strings.TrimSpace(cfg.Disclosure) == "" {
		return nil, Errorf(EINVALID, "invention disclosure text required")
	}
	if cfg.Answerer == nil {
		return nil, Errorf(EINVALID, "answerer required")
	}
	return &Session{
		questions:  cfg.Questions,
		disclosure: cfg.Disclosure,
		additional: cfg.AdditionalInfo,
		model:      cfg.Model,
		answerer:   cfg.Answerer,
		state:      StateAwaitingContext,
		approved:   make(map[int]Attempt),
	}, nil
}

// Submit generates an answer for the current question. The optional
// userContext is passed to the model alongside the question; when the
// previous attempt was rejected, its text is included so the model can
// improve on it. Deltas are forwarded to stream as they arrive, but the
// session transitions only after the complete response has been folded
// into a single string. On any generation error, cancellation included,
// no attempt is recorded and the session stays on the same question in
// StateAwaitingContext, so the reviewer can simply submit again.
func (s *Session) Submit(ctx context.Context, userContext string, stream StreamFunc) (*Attempt, error) {
	if s.state != StateAwaitingContext {
		return nil, Errorf(ECONFLICT, "no question is awaiting context in state %s", s.state)
	}

	req := AnswerRequest{
		Question:       s.questions[s.current].Text,
		Disclosure:     s.disclosure,
		AdditionalInfo: s.additional,
		UserContext:    userContext,
		Model:          s.model,
	}
	if s.lastRejected != nil {
		req.RejectedAnswer = s.lastRejected.Text
	}

	text, err := s.answerer.Answer(ctx, req, stream)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, Errorf(EUNAVAILABLE, "model returned an empty answer")
	}

	s.pending = &Attempt{
		QuestionIndex: s.current,
		Text:          text,
		Context:       userContext,
		Status:        AttemptPending,
	}
	s.state = StateAwaitingDecision
	return s.pending, nil
}

// Decide applies the reviewer's verdict to the pending answer. Rejection
// keeps the session on the same question and retains the rejected
// attempt for the retry prompt; it never advances. Approval stores the
// attempt under its question index, clears any retained rejection, and
// advances to the next question, or to StateComplete after the last one.
func (s *Session) Decide(d Decision) error {
	if s.state != StateAwaitingDecision {
		return Errorf(ECONFLICT, "no answer is awaiting a decision in state %s", s.state)
	}

	switch d {
	case DecisionReject:
		s.pending.Status = AttemptRejected
		s.lastRejected = s.pending
		s.pending = nil
		s.state = StateAwaitingContext
		return nil

	case DecisionApprove:
		s.pending.Status = AttemptApproved
		s.approved[s.current] = *s.pending
		s.pending = nil
		s.lastRejected = nil
		s.current++
		if s.current == len(s.questions) {
			s.state = StateComplete
		} else {
			s.state = StateAwaitingContext
		}
		return nil
	}
	return Errorf(EINVALID, "unknown decision")
}

// State returns the current session state.
func (s *Session) State() SessionState {
	return s.state
}

// Model returns the model name answers are generated with.
func (s *Session) Model() string {
	return s.model
}

// Questions returns the fixed question list the session iterates over.
func (s *Session) Questions() []Question {
	return s.questions
}

// QuestionCount returns the total number of questions.
func (s *Session) QuestionCount() int {
	return len(s.questions)
}

// CurrentIndex returns the zero-based index of the question under
// review. Once the session is complete it equals QuestionCount.
func (s *Session) CurrentIndex() int {
	return s.current
}

// CurrentQuestion returns the question under review, or nil once the
// session is complete.
func (s *Session) CurrentQuestion() *Question {
	if s.current >= len(s.questions) {
		return nil
	}
	q := s.questions[s.current]
	return &q
}

// Pending returns the attempt awaiting a decision, or nil.
func (s *Session) Pending() *Attempt {
	return s.pending
}

// LastRejected returns the most recently rejected attempt for the
// current question, or nil when there is none. Approval of a question
// clears it.
func (s *Session) LastRejected() *Attempt {
	return s.lastRejected
}

// ApprovedCount returns how many questions have an approved answer.
func (s *Session) ApprovedCount() int {
	return len(s.approved)
}

// Approved returns the approved attempts in question order. The list is
// complete exactly when the session is in StateComplete.
func (s *Session) Approved() []Attempt {
	out := make([]Attempt, 0, len(s.approved))
	for i := range s.questions {
		if a, ok := s.approved[i]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Progress returns the approved and total question counts.
func (s *Session) Progress() (approved, total int) {
	return len(s.approved), len(s.questions)
}

// AnswerRecords converts the approved attempts into archive records for
// the run identified by runID, in question order.
func (s *Session) AnswerRecords(runID string) []*AnswerRecord {
	approved := s.Approved()
	records := make([]*AnswerRecord, 0, len(approved))
	for _, a := range approved {
		records = append(records, &AnswerRecord{
			RunID:         runID,
			QuestionIndex: a.QuestionIndex,
			Question:      s.questions[a.QuestionIndex].Text,
			Answer:        a.Text,
			Context:       a.Context,
		})
	}
	return records
}
