// Package web serves the browser review interface: a REST surface for
// loading documents and listing models, and a WebSocket channel that
// streams generation while the reviewer works through the questions.
package web

import (
	"context"
	_ "embed"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/siddhant230/draftclaim"
	"golang.org/x/sync/errgroup"
)

//go:embed index.html
var indexHTML []byte

// Config carries the server settings.
type Config struct {
	// Addr is the host:port to listen on.
	Addr string

	// Model is the default generation model. Clients may override it
	// per session.
	Model string
}

// Services holds the backing services the server drives.
type Services struct {
	Reader   draftclaim.DocumentReader
	Answerer draftclaim.Answerer
	Analyzer draftclaim.Analyzer
	Models   draftclaim.ModelService
	Reports  draftclaim.ReportWriter
	Runs     draftclaim.RunService
	Answers  draftclaim.AnswerService
}

// Server serves the review UI and its API. One document set is loaded
// at a time; each WebSocket connection runs its own verification
// session against it.
type Server struct {
	cfg    Config
	svcs   Services
	logger *slog.Logger

	engine *gin.Engine
	server *http.Server
	ln     net.Listener

	mu    sync.Mutex
	set   *draftclaim.DocumentSet
	paths loadRequest
}

// NewServer creates a Server with its routes registered.
func NewServer(cfg Config, svcs Services, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:    cfg,
		svcs:   svcs,
		logger: logger,
		engine: engine,
	}

	engine.GET("/", s.handleIndex)
	engine.GET("/api/models", s.handleModels)
	engine.POST("/api/load", s.handleLoad)
	engine.GET("/api/documents", s.handleDocuments)
	engine.GET("/ws", s.handleWS)

	s.server = &http.Server{Handler: engine}
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Open starts listening on the configured address.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return draftclaim.WrapErrorf(err, draftclaim.EUNAVAILABLE, "cannot listen on %s", s.cfg.Addr)
	}
	s.ln = ln
	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("server stopped", "err", err)
		}
	}()
	return nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.cfg.Addr
	}
	return s.ln.Addr().String()
}

// Close shuts the server down, waiting for in-flight requests.
func (s *Server) Close() error {
	return s.server.Shutdown(context.Background())
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) handleModels(c *gin.Context) {
	models, err := s.svcs.Models.ListModels(c.Request.Context())
	if err != nil {
		errorJSON(c, err)
		return
	}
	if models == nil {
		models = []draftclaim.Model{}
	}
	c.JSON(http.StatusOK, gin.H{"models": models})
}

// loadRequest names the documents of one review.
type loadRequest struct {
	DisclosurePath     string `json:"disclosurePath"`
	AdditionalInfoPath string `json:"additionalInfoPath"`
	ClaimsPath         string `json:"claimsPath"`
}

// documentSummary describes a loaded document without its full text.
type documentSummary struct {
	Path     string `json:"path"`
	Chars    int    `json:"chars"`
	Comments int    `json:"comments"`
	Hash     string `json:"hash"`
}

type loadResponse struct {
	Disclosure     documentSummary       `json:"disclosure"`
	AdditionalInfo *documentSummary      `json:"additionalInfo,omitempty"`
	Claims         documentSummary       `json:"claims"`
	Questions      []draftclaim.Question `json:"questions"`
	QuestionCount  int                   `json:"questionCount"`
}

func (s *Server) handleLoad(c *gin.Context) {
	var req loadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, draftclaim.WrapErrorf(err, draftclaim.EINVALID, "malformed load request"))
		return
	}

	set, err := s.loadSet(c.Request.Context(), req)
	if err != nil {
		errorJSON(c, err)
		return
	}

	s.mu.Lock()
	s.set = set
	s.paths = req
	s.mu.Unlock()

	c.JSON(http.StatusOK, summarize(set, req))
}

func (s *Server) handleDocuments(c *gin.Context) {
	s.mu.Lock()
	set, paths := s.set, s.paths
	s.mu.Unlock()

	if set == nil {
		errorJSON(c, draftclaim.Errorf(draftclaim.ENOTFOUND, "no documents loaded"))
		return
	}
	c.JSON(http.StatusOK, summarize(set, paths))
}

// loadSet reads the review documents concurrently. Any failed load
// fails the whole set.
func (s *Server) loadSet(ctx context.Context, req loadRequest) (*draftclaim.DocumentSet, error) {
	if req.DisclosurePath == "" {
		return nil, draftclaim.Errorf(draftclaim.EINVALID, "disclosure path required")
	}
	if req.ClaimsPath == "" {
		return nil, draftclaim.Errorf(draftclaim.EINVALID, "claims path required")
	}

	var set draftclaim.DocumentSet
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		doc, err := s.svcs.Reader.ReadDocument(ctx, req.DisclosurePath, draftclaim.RoleDisclosure)
		if err != nil {
			return err
		}
		set.Disclosure = doc
		return nil
	})
	g.Go(func() error {
		doc, err := s.svcs.Reader.ReadDocument(ctx, req.ClaimsPath, draftclaim.RoleClaims)
		if err != nil {
			return err
		}
		set.Claims = doc
		return nil
	})
	if req.AdditionalInfoPath != "" {
		g.Go(func() error {
			doc, err := s.svcs.Reader.ReadDocument(ctx, req.AdditionalInfoPath, draftclaim.RoleAdditionalInfo)
			if err != nil {
				return err
			}
			set.AdditionalInfo = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

func summarize(set *draftclaim.DocumentSet, paths loadRequest) loadResponse {
	questions := set.Questions()
	resp := loadResponse{
		Disclosure: documentSummary{
			Path:  paths.DisclosurePath,
			Chars: len(set.Disclosure.Text),
			Hash:  set.Disclosure.ContentHash,
		},
		Claims: documentSummary{
			Path:     paths.ClaimsPath,
			Chars:    len(set.Claims.Text),
			Comments: len(set.Claims.Comments),
			Hash:     set.Claims.ContentHash,
		},
		Questions:     questions,
		QuestionCount: len(questions),
	}
	if set.AdditionalInfo != nil {
		resp.AdditionalInfo = &documentSummary{
			Path:  paths.AdditionalInfoPath,
			Chars: len(set.AdditionalInfo.Text),
			Hash:  set.AdditionalInfo.ContentHash,
		}
	}
	return resp
}

// documentSet returns the loaded set, or an ECONFLICT error when no
// documents have been loaded yet.
func (s *Server) documentSet() (*draftclaim.DocumentSet, loadRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set == nil {
		return nil, loadRequest{}, draftclaim.Errorf(draftclaim.ECONFLICT, "no documents loaded; load a document set first")
	}
	return s.set, s.paths, nil
}

// errorJSON writes the error as a JSON body with a status derived from
// its code.
func errorJSON(c *gin.Context, err error) {
	c.JSON(statusFromCode(draftclaim.ErrorCode(err)), gin.H{
		"code":  draftclaim.ErrorCode(err),
		"error": draftclaim.ErrorMessage(err),
	})
}

func statusFromCode(code string) int {
	switch code {
	case draftclaim.EINVALID:
		return http.StatusBadRequest
	case draftclaim.ENOTFOUND:
		return http.StatusNotFound
	case draftclaim.ECONFLICT:
		return http.StatusConflict
	case draftclaim.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
