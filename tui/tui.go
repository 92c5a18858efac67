// Package tui implements the full-screen terminal front end for the
// verification loop. It follows the bubbletea model/update/view cycle:
// streamed answer deltas arrive as messages read off a channel, so the
// Update function stays synchronous and testable without a terminal.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/siddhant230/draftclaim"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	questionStyle = lipgloss.NewStyle().Bold(true)
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	retryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).MarginTop(1)
)

// screen identifies which part of the loop is on screen.
type screen int

const (
	screenContext    screen = iota // waiting for reviewer context
	screenStreaming                // answer generation in progress
	screenDecision                 // approve or reject prompt
	screenFinalizing               // report export after the last approval
	screenDone                     // completion summary
)

// Config carries the loaded documents and the services the terminal
// session drives. The document set must already be validated and carry
// at least one question.
type Config struct {
	Set   *draftclaim.DocumentSet
	Model string

	Answerer draftclaim.Answerer
	Reports  draftclaim.ReportWriter
	Runs     draftclaim.RunService
	Answers  draftclaim.AnswerService
}

type generationResult struct {
	attempt *draftclaim.Attempt
	err     error
}

type deltaMsg struct {
	text string
}

type generationDoneMsg struct {
	attempt *draftclaim.Attempt
	err     error
}

type finalizeDoneMsg struct {
	path       string
	runID      string
	archiveErr error
	err        error
}

// Model is the bubbletea application state. One Model runs one
// verification session to completion.
type Model struct {
	cfg     Config
	ctx     context.Context
	session *draftclaim.Session

	screen screen
	input  textinput.Model
	answer string
	errMsg string
	width  int

	deltaCh chan string
	doneCh  chan generationResult

	reportPath string
	runID      string
	archiveErr string
}

// New builds the model and the session it drives. Returns EINVALID when
// the set carries no questions or the config is incomplete.
func New(ctx context.Context, cfg Config) (*Model, error) {
	session, err := draftclaim.NewSession(draftclaim.SessionConfig{
		Questions:      cfg.Set.Questions(),
		Disclosure:     cfg.Set.Disclosure.Text,
		AdditionalInfo: cfg.Set.AdditionalText(),
		Model:          cfg.Model,
		Answerer:       cfg.Answerer,
	})
	if err != nil {
		return nil, err
	}

	input := textinput.New()
	input.Placeholder = "additional context (optional)"
	input.Focus()

	return &Model{
		cfg:     cfg,
		ctx:     ctx,
		session: session,
		screen:  screenContext,
		input:   input,
	}, nil
}

// Run drives the model on a real terminal until the session completes
// or the reviewer quits. Cancelling ctx tears the program down and
// aborts any generation in flight.
func Run(ctx context.Context, cfg Config) error {
	m, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// Init starts the cursor blink.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update advances the model. Key handling depends on the active screen;
// generation messages are handled regardless.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(20, msg.Width-8)
		return m, nil

	case deltaMsg:
		m.answer += msg.text
		return m, m.waitForDelta()

	case generationDoneMsg:
		if msg.err != nil {
			m.errMsg = draftclaim.ErrorMessage(msg.err)
			m.answer = ""
			m.screen = screenContext
			m.input.Focus()
			return m, textinput.Blink
		}
		m.answer = msg.attempt.Text
		m.screen = screenDecision
		return m, nil

	case finalizeDoneMsg:
		if msg.err != nil {
			m.errMsg = draftclaim.ErrorMessage(msg.err)
			m.screen = screenDone
			return m, nil
		}
		m.reportPath = msg.path
		m.runID = msg.runID
		if msg.archiveErr != nil {
			m.archiveErr = draftclaim.ErrorMessage(msg.archiveErr)
		}
		m.screen = screenDone
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.screen == screenContext {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case screenContext:
		switch msg.String() {
		case "enter":
			return m.startGeneration(strings.TrimSpace(m.input.Value()))
		case "esc":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case screenDecision:
		switch msg.String() {
		case "y":
			return m.applyDecision(draftclaim.DecisionApprove)
		case "n":
			return m.applyDecision(draftclaim.DecisionReject)
		case "q", "esc":
			return m, tea.Quit
		}

	case screenDone:
		return m, tea.Quit
	}
	return m, nil
}

// startGeneration launches the model call in a goroutine and begins
// draining its delta channel. The stream callback selects on ctx so the
// goroutine ends when the program is torn down mid-generation.
func (m *Model) startGeneration(userContext string) (tea.Model, tea.Cmd) {
	m.screen = screenStreaming
	m.answer = ""
	m.errMsg = ""
	m.input.SetValue("")
	m.input.Blur()

	ch := make(chan string, 16)
	done := make(chan generationResult, 1)
	ctx := m.ctx
	session := m.session
	go func() {
		attempt, err := session.Submit(ctx, userContext, func(delta string) {
			select {
			case ch <- delta:
			case <-ctx.Done():
			}
		})
		close(ch)
		done <- generationResult{attempt: attempt, err: err}
	}()
	m.deltaCh = ch
	m.doneCh = done
	return m, m.waitForDelta()
}

// waitForDelta blocks on the next streamed chunk, falling through to
// the generation result once the channel closes.
func (m *Model) waitForDelta() tea.Cmd {
	deltaCh := m.deltaCh
	doneCh := m.doneCh
	return func() tea.Msg {
		if text, ok := <-deltaCh; ok {
			return deltaMsg{text: text}
		}
		res := <-doneCh
		return generationDoneMsg{attempt: res.attempt, err: res.err}
	}
}

func (m *Model) applyDecision(d draftclaim.Decision) (tea.Model, tea.Cmd) {
	if err := m.session.Decide(d); err != nil {
		m.errMsg = draftclaim.ErrorMessage(err)
		return m, nil
	}

	if d == draftclaim.DecisionReject {
		m.screen = screenContext
		m.answer = ""
		m.input.Focus()
		return m, textinput.Blink
	}

	if m.session.State() == draftclaim.StateComplete {
		m.screen = screenFinalizing
		return m, m.finalize()
	}
	m.screen = screenContext
	m.answer = ""
	m.errMsg = ""
	m.input.Focus()
	return m, textinput.Blink
}

// finalize writes the transcript and archives the run. Archive failures
// are reported on the completion screen but do not discard the report.
func (m *Model) finalize() tea.Cmd {
	return func() tea.Msg {
		report, err := draftclaim.QAReportFromSession(m.session)
		if err != nil {
			return finalizeDoneMsg{err: err}
		}
		path, err := m.cfg.Reports.WriteQA(m.ctx, report)
		if err != nil {
			return finalizeDoneMsg{err: err}
		}
		runID, archiveErr := m.archive(path)
		return finalizeDoneMsg{path: path, runID: runID, archiveErr: archiveErr}
	}
}

func (m *Model) archive(reportPath string) (string, error) {
	set := m.cfg.Set
	run := &draftclaim.Run{
		Kind:           draftclaim.RunVerification,
		Model:          m.session.Model(),
		DisclosurePath: set.Disclosure.Path,
		ClaimsPath:     set.Claims.Path,
		DisclosureHash: set.Disclosure.ContentHash,
		ClaimsHash:     set.Claims.ContentHash,
		QuestionCount:  m.session.QuestionCount(),
		ApprovedCount:  m.session.ApprovedCount(),
		ReportPath:     reportPath,
	}
	if err := m.cfg.Runs.CreateRun(m.ctx, run); err != nil {
		return "", err
	}

	if err := m.cfg.Answers.CreateAnswers(m.ctx, m.session.AnswerRecords(run.ID)); err != nil {
		return run.ID, err
	}
	return run.ID, nil
}

// View renders the active screen.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	body := lipgloss.NewStyle().Width(max(20, width-4))

	var sections []string
	sections = append(sections, titleStyle.Render("draftclaim · claims verification"))
	sections = append(sections, metaStyle.Render(fmt.Sprintf("model %s", m.session.Model())))

	switch m.screen {
	case screenDone:
		sections = append(sections, "", m.renderDone(body))
	case screenFinalizing:
		sections = append(sections, "", "Writing the report…")
	default:
		sections = append(sections, "", m.renderQuestion(body))
		if m.errMsg != "" {
			sections = append(sections, errorStyle.Render(m.errMsg))
		}
		switch m.screen {
		case screenContext:
			sections = append(sections, "", m.input.View())
			sections = append(sections, hintStyle.Render("enter → generate answer    esc → quit"))
		case screenStreaming:
			sections = append(sections, "", body.Render(answerStyle.Render(m.answer+"▌")))
		case screenDecision:
			sections = append(sections, "", body.Render(answerStyle.Render(m.answer)))
			sections = append(sections, hintStyle.Render("y → approve    n → reject and retry    q → quit"))
		}
	}
	return strings.Join(sections, "\n") + "\n"
}

func (m *Model) renderQuestion(body lipgloss.Style) string {
	q := m.session.CurrentQuestion()
	if q == nil {
		return ""
	}
	header := metaStyle.Render(fmt.Sprintf("question %d of %d", q.Index+1, m.session.QuestionCount()))
	lines := []string{header, body.Render(questionStyle.Render(q.Text))}
	if q.Anchor != "" {
		lines = append(lines, body.Render(metaStyle.Render("claim: "+q.Anchor)))
	}
	if m.session.LastRejected() != nil {
		lines = append(lines, retryStyle.Render("previous answer rejected; add context to improve the retry"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderDone(body lipgloss.Style) string {
	if m.errMsg != "" {
		return errorStyle.Render("report export failed: " + m.errMsg)
	}
	approved, total := m.session.Progress()
	lines := []string{
		okStyle.Render("verification complete"),
		body.Render(fmt.Sprintf("%d of %d answers approved", approved, total)),
		body.Render("report: " + m.reportPath),
	}
	if m.runID != "" {
		lines = append(lines, body.Render(metaStyle.Render("run "+m.runID)))
	}
	if m.archiveErr != "" {
		lines = append(lines, errorStyle.Render("run archive failed: "+m.archiveErr))
	}
	lines = append(lines, hintStyle.Render("press any key to exit"))
	return strings.Join(lines, "\n")
}
