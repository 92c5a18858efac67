package web

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/siddhant230/draftclaim"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// clientMessage is one inbound websocket message. Type selects the
// operation; Payload is decoded per type.
type clientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// event is one outbound websocket message.
type event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type startPayload struct {
	Model string `json:"model,omitempty"`
}

type submitPayload struct {
	Context string `json:"context,omitempty"`
}

type decidePayload struct {
	Decision string `json:"decision"`
}

type questionPayload struct {
	Index int    `json:"index"`
	Total int    `json:"total"`
	Text  string `json:"text"`
	Retry bool   `json:"retry"`
}

type deltaPayload struct {
	Text string `json:"text"`
}

type answerPayload struct {
	Text string `json:"text"`
}

type completePayload struct {
	ReportPath string `json:"reportPath"`
	RunID      string `json:"runId,omitempty"`
	Approved   int    `json:"approved"`
	Total      int    `json:"total"`
}

type analysisPayload struct {
	ReportPath string `json:"reportPath"`
	RunID      string `json:"runId,omitempty"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// wsClient is one connected reviewer. The verification session lives on
// the connection: closing the browser tab abandons the session, and two
// tabs get two independent sessions over the same loaded documents.
//
// mu guards session and busy. While busy is set a generation goroutine
// owns the session, so every handler that would touch it checks busy
// first and refuses with ECONFLICT instead of blocking.
type wsClient struct {
	server  *Server
	conn    *websocket.Conn
	writeMu sync.Mutex
	limiter *rate.Limiter

	mu      sync.Mutex
	session *draftclaim.Session
	set     *draftclaim.DocumentSet
	paths   loadRequest
	busy    bool
}

func (s *Server) handleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	s.logger.Info("websocket session opened", "remote", conn.RemoteAddr().String())
	defer s.logger.Info("websocket session closed", "remote", conn.RemoteAddr().String())

	client := &wsClient{
		server:  s,
		conn:    conn,
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
	}
	client.readLoop(c.Request.Context())
}

// readLoop dispatches inbound messages until the connection drops. The
// request context is cancelled when this returns, which aborts any
// generation still running for this client.
func (c *wsClient) readLoop(ctx context.Context) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError(draftclaim.Errorf(draftclaim.EINVALID, "malformed message"))
			continue
		}

		switch msg.Type {
		case "start":
			c.handleStart(msg.Payload)
		case "submit":
			c.handleSubmit(ctx, msg.Payload)
		case "decide":
			c.handleDecide(ctx, msg.Payload)
		case "analyze":
			c.handleAnalyze(ctx, msg.Payload)
		default:
			c.sendError(draftclaim.Errorf(draftclaim.EINVALID, "unknown message type %q", msg.Type))
		}
	}
}

// handleStart begins a verification session over the loaded documents.
// Starting again replaces the session, so a reviewer can restart from
// question one at any point except mid-generation.
func (c *wsClient) handleStart(raw json.RawMessage) {
	var p startPayload
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p); err != nil {
			c.sendError(draftclaim.Errorf(draftclaim.EINVALID, "malformed start payload"))
			return
		}
	}

	set, paths, err := c.server.documentSet()
	if err != nil {
		c.sendError(err)
		return
	}
	questions := set.Questions()
	if len(questions) == 0 {
		c.sendError(draftclaim.Errorf(draftclaim.EINVALID, "no review comments found in %s", paths.ClaimsPath))
		return
	}

	model := p.Model
	if model == "" {
		model = c.server.cfg.Model
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		c.sendError(draftclaim.Errorf(draftclaim.ECONFLICT, "generation in progress"))
		return
	}

	session, err := draftclaim.NewSession(draftclaim.SessionConfig{
		Questions:      questions,
		Disclosure:     set.Disclosure.Text,
		AdditionalInfo: set.AdditionalText(),
		Model:          model,
		Answerer:       c.server.svcs.Answerer,
	})
	if err != nil {
		c.sendError(err)
		return
	}
	c.session = session
	c.set = set
	c.paths = paths
	c.sendQuestion(session, false)
}

// handleSubmit generates an answer for the current question in a
// goroutine so the read loop keeps serving messages while the model
// streams. Only one generation may run per connection.
func (c *wsClient) handleSubmit(ctx context.Context, raw json.RawMessage) {
	var p submitPayload
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p); err != nil {
			c.sendError(draftclaim.Errorf(draftclaim.EINVALID, "malformed submit payload"))
			return
		}
	}

	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		c.sendError(draftclaim.Errorf(draftclaim.ECONFLICT, "no active session; send start first"))
		return
	}
	if c.busy {
		c.mu.Unlock()
		c.sendError(draftclaim.Errorf(draftclaim.ECONFLICT, "generation already in progress"))
		return
	}
	if !c.limiter.Allow() {
		c.mu.Unlock()
		c.sendError(draftclaim.Errorf(draftclaim.EUNAVAILABLE, "too many generation requests; slow down"))
		return
	}
	c.busy = true
	session := c.session
	c.mu.Unlock()

	go func() {
		attempt, err := session.Submit(ctx, p.Context, func(delta string) {
			c.send(event{Type: "delta", Payload: deltaPayload{Text: delta}})
		})

		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()

		if err != nil {
			c.sendError(err)
			return
		}
		c.send(event{Type: "answer", Payload: answerPayload{Text: attempt.Text}})
		c.send(event{Type: "prompt_decision"})
	}()
}

// handleDecide applies the reviewer's verdict. Rejection re-presents the
// same question for another attempt; approving the final question writes
// the report and archives the run.
func (c *wsClient) handleDecide(ctx context.Context, raw json.RawMessage) {
	var p decidePayload
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p); err != nil {
			c.sendError(draftclaim.Errorf(draftclaim.EINVALID, "malformed decide payload"))
			return
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		c.sendError(draftclaim.Errorf(draftclaim.ECONFLICT, "no active session; send start first"))
		return
	}
	if c.busy {
		c.sendError(draftclaim.Errorf(draftclaim.ECONFLICT, "generation in progress"))
		return
	}

	decision, err := draftclaim.ParseDecision(p.Decision)
	if err != nil {
		c.sendError(err)
		c.send(event{Type: "prompt_decision"})
		return
	}
	if err := c.session.Decide(decision); err != nil {
		c.sendError(err)
		return
	}

	if decision == draftclaim.DecisionReject {
		c.sendQuestion(c.session, true)
		return
	}
	if c.session.State() == draftclaim.StateComplete {
		c.finalize(ctx)
		return
	}
	c.sendQuestion(c.session, false)
}

// finalize exports the transcript and archives the run. Called with mu
// held, after the last approval. An archive failure is logged but does
// not fail the flow; the report is already on disk at that point.
func (c *wsClient) finalize(ctx context.Context) {
	report, err := draftclaim.QAReportFromSession(c.session)
	if err != nil {
		c.sendError(err)
		return
	}
	path, err := c.server.svcs.Reports.WriteQA(ctx, report)
	if err != nil {
		c.sendError(err)
		return
	}

	runID, err := c.archiveVerification(ctx, path)
	if err != nil {
		c.server.logger.Error("run archive failed", "err", err)
	}

	approved, total := c.session.Progress()
	c.send(event{Type: "complete", Payload: completePayload{
		ReportPath: path,
		RunID:      runID,
		Approved:   approved,
		Total:      total,
	}})
}

func (c *wsClient) archiveVerification(ctx context.Context, reportPath string) (string, error) {
	run := &draftclaim.Run{
		Kind:           draftclaim.RunVerification,
		Model:          c.session.Model(),
		DisclosurePath: c.paths.DisclosurePath,
		ClaimsPath:     c.paths.ClaimsPath,
		DisclosureHash: c.set.Disclosure.ContentHash,
		ClaimsHash:     c.set.Claims.ContentHash,
		QuestionCount:  c.session.QuestionCount(),
		ApprovedCount:  c.session.ApprovedCount(),
		ReportPath:     reportPath,
	}
	if err := c.server.svcs.Runs.CreateRun(ctx, run); err != nil {
		return "", err
	}

	if err := c.server.svcs.Answers.CreateAnswers(ctx, c.session.AnswerRecords(run.ID)); err != nil {
		return run.ID, err
	}
	return run.ID, nil
}

// handleAnalyze runs the one-shot comparative analysis over the loaded
// documents. Independent of any verification session; only the shared
// one-generation-at-a-time gate applies.
func (c *wsClient) handleAnalyze(ctx context.Context, raw json.RawMessage) {
	var p startPayload
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p); err != nil {
			c.sendError(draftclaim.Errorf(draftclaim.EINVALID, "malformed analyze payload"))
			return
		}
	}

	set, paths, err := c.server.documentSet()
	if err != nil {
		c.sendError(err)
		return
	}

	model := p.Model
	if model == "" {
		model = c.server.cfg.Model
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		c.sendError(draftclaim.Errorf(draftclaim.ECONFLICT, "generation already in progress"))
		return
	}
	if !c.limiter.Allow() {
		c.mu.Unlock()
		c.sendError(draftclaim.Errorf(draftclaim.EUNAVAILABLE, "too many generation requests; slow down"))
		return
	}
	c.busy = true
	c.mu.Unlock()

	go func() {
		defer func() {
			c.mu.Lock()
			c.busy = false
			c.mu.Unlock()
		}()

		req := draftclaim.AnalysisRequest{
			Disclosure:     set.Disclosure.Text,
			AdditionalInfo: set.AdditionalText(),
			Claims:         set.Claims.Text,
			Model:          model,
		}
		text, err := c.server.svcs.Analyzer.Analyze(ctx, req, func(delta string) {
			c.send(event{Type: "delta", Payload: deltaPayload{Text: delta}})
		})
		if err != nil {
			c.sendError(err)
			return
		}

		path, err := c.server.svcs.Reports.WriteAnalysis(ctx, draftclaim.NewAnalysisReport(model, text))
		if err != nil {
			c.sendError(err)
			return
		}
		runID, err := c.archiveAnalysis(ctx, set, paths, model, path)
		if err != nil {
			c.server.logger.Error("run archive failed", "err", err)
		}
		c.send(event{Type: "analysis_done", Payload: analysisPayload{ReportPath: path, RunID: runID}})
	}()
}

func (c *wsClient) archiveAnalysis(ctx context.Context, set *draftclaim.DocumentSet, paths loadRequest, model, reportPath string) (string, error) {
	run := &draftclaim.Run{
		Kind:           draftclaim.RunAnalysis,
		Model:          model,
		DisclosurePath: paths.DisclosurePath,
		ClaimsPath:     paths.ClaimsPath,
		DisclosureHash: set.Disclosure.ContentHash,
		ClaimsHash:     set.Claims.ContentHash,
		ReportPath:     reportPath,
	}
	if err := c.server.svcs.Runs.CreateRun(ctx, run); err != nil {
		return "", err
	}
	return run.ID, nil
}

func (c *wsClient) sendQuestion(session *draftclaim.Session, retry bool) {
	q := session.CurrentQuestion()
	if q == nil {
		return
	}
	c.send(event{Type: "question", Payload: questionPayload{
		Index: q.Index,
		Total: session.QuestionCount(),
		Text:  q.Text,
		Retry: retry,
	}})
}

func (c *wsClient) sendError(err error) {
	c.send(event{Type: "error", Payload: errorPayload{
		Code:    draftclaim.ErrorCode(err),
		Message: draftclaim.ErrorMessage(err),
	}})
}

// send serializes writes; the read loop and generation goroutines both
// emit events. Write failures mean the connection is gone, so they are
// logged and otherwise ignored.
func (c *wsClient) send(ev event) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteJSON(ev); err != nil {
		c.server.logger.Debug("websocket write failed", "err", err)
	}
}
