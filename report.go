package draftclaim

import (
	"context"
	"strings"
	"time"
)

// Report titles as they appear in the exported documents.
const (
	AnalysisReportTitle = "Patent Claim Analysis Report"
	QAReportTitle       = "Patent Claim Verification — Q&A Report"
)

// AnalysisReport is a completed comparative analysis ready for export.
// Body holds the raw generated text; writers convert its markdown subset
// to document formatting.
type AnalysisReport struct {
	Title       string    `json:"title"`
	Model       string    `json:"model"`
	GeneratedAt time.Time `json:"generatedAt"`
	Body        string    `json:"body"`
}

// NewAnalysisReport wraps generated analysis text for export, stamped
// with the generation time.
func NewAnalysisReport(model, body string) *AnalysisReport {
	return &AnalysisReport{
		Title:       AnalysisReportTitle,
		Model:       model,
		GeneratedAt: time.Now(),
		Body:        body,
	}
}

// Validate returns an error if the report has no body.
func (r *AnalysisReport) Validate() error {
	if strings.TrimSpace(r.Body) == "" {
		return Errorf(EINVALID, "analysis report body required")
	}
	return nil
}

// QAPair couples a question with its approved answer and the reviewer
// context the answer was generated under.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Context  string `json:"context,omitempty"`
}

// QAReport is the exportable transcript of a completed verification
// session: the approved answers only, in question order.
type QAReport struct {
	Title       string    `json:"title"`
	Model       string    `json:"model"`
	GeneratedAt time.Time `json:"generatedAt"`
	Pairs       []QAPair  `json:"pairs"`
}

// Validate returns an error if the report carries no pairs.
func (r *QAReport) Validate() error {
	if len(r.Pairs) == 0 {
		return Errorf(EINVALID, "q&a report requires at least one approved answer")
	}
	return nil
}

// QAReportFromSession builds the export transcript from a session. Only
// approved answers appear; rejected attempts never reach the report.
// Returns ECONFLICT unless the session is in StateComplete.
func QAReportFromSession(s *Session) (*QAReport, error) {
	if s.State() != StateComplete {
		return nil, Errorf(ECONFLICT, "verification is not complete")
	}
	questions := s.Questions()
	approved := s.Approved()
	pairs := make([]QAPair, 0, len(approved))
	for _, a := range approved {
		pairs = append(pairs, QAPair{
			Question: questions[a.QuestionIndex].Text,
			Answer:   a.Text,
			Context:  a.Context,
		})
	}
	return &QAReport{
		Title:       QAReportTitle,
		Model:       s.Model(),
		GeneratedAt: time.Now(),
		Pairs:       pairs,
	}, nil
}

// ReportWriter serializes reports into files on disk.
type ReportWriter interface {
	// WriteAnalysis writes an analysis report and returns the created
	// file path. Returns ECONFLICT when the target file already exists;
	// existing reports are never overwritten.
	WriteAnalysis(ctx context.Context, report *AnalysisReport) (string, error)

	// WriteQA writes a question and answer transcript and returns the
	// created file path. Conflict semantics match WriteAnalysis.
	WriteQA(ctx context.Context, report *QAReport) (string, error)
}
