package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/siddhant230/draftclaim"
	"github.com/siddhant230/draftclaim/config"
	"github.com/siddhant230/draftclaim/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DB     *sqlite.DB
	Config *config.Config

	// Model is the generation model used when a command does not
	// override it with --model.
	Model string

	Reader   draftclaim.DocumentReader
	Answerer draftclaim.Answerer
	Analyzer draftclaim.Analyzer
	Models   draftclaim.ModelService
	Reports  draftclaim.ReportWriter
	Runs     draftclaim.RunService
	Answers  draftclaim.AnswerService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Models    ModelsCmd    `cmd:"" help:"List models available on the generation endpoint"`
	Questions QuestionsCmd `cmd:"" help:"List reviewer questions found in a claims document"`
	Analyze   AnalyzeCmd   `cmd:"" help:"Analyze claim support and export a report"`
	Verify    VerifyCmd    `cmd:"" help:"Verify claims question by question with reviewer approval"`
	History   HistoryCmd   `cmd:"" help:"List archived runs"`
	Show      ShowCmd      `cmd:"" help:"Show an archived run with its approved answers"`
	Serve     ServeCmd     `cmd:"" help:"Serve the browser review interface"`
	Tui       TuiCmd       `cmd:"" help:"Verify claims in a full-screen terminal interface"`
}

// ModelsCmd is the "models" subcommand.
type ModelsCmd struct{}

// QuestionsCmd is the "questions" subcommand.
type QuestionsCmd struct {
	Claims string `arg:"" help:"Claims document (.docx) with reviewer comments"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	Disclosure string `required:"" help:"Invention disclosure document (.docx)"`
	Claims     string `required:"" help:"Claims document (.docx)"`
	Info       string `help:"Additional information document (.docx)"`
	Model      string `short:"m" help:"Generation model (defaults to the configured model)"`
	OutputDir  string `short:"o" help:"Directory for the exported report"`
}

// VerifyCmd is the "verify" subcommand.
type VerifyCmd struct {
	Disclosure string `required:"" help:"Invention disclosure document (.docx)"`
	Claims     string `required:"" help:"Claims document (.docx) with reviewer comments"`
	Info       string `help:"Additional information document (.docx)"`
	Model      string `short:"m" help:"Generation model (defaults to the configured model)"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Kind  string `help:"Filter by run kind (analysis or verification)"`
	Limit int    `default:"20" help:"Maximum number of runs to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Run ID"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `help:"Listen address (defaults to the configured host and port)"`
}

// TuiCmd is the "tui" subcommand.
type TuiCmd struct {
	Disclosure string `required:"" help:"Invention disclosure document (.docx)"`
	Claims     string `required:"" help:"Claims document (.docx) with reviewer comments"`
	Info       string `help:"Additional information document (.docx)"`
	Model      string `short:"m" help:"Generation model (defaults to the configured model)"`
}

// loadSet reads the documents of a review. The additional information
// document is optional; the other two are not.
func loadSet(deps *Dependencies, disclosure, info, claims string) (*draftclaim.DocumentSet, error) {
	set := &draftclaim.DocumentSet{}

	doc, err := deps.Reader.ReadDocument(deps.Ctx, disclosure, draftclaim.RoleDisclosure)
	if err != nil {
		return nil, err
	}
	set.Disclosure = doc

	if info != "" {
		doc, err := deps.Reader.ReadDocument(deps.Ctx, info, draftclaim.RoleAdditionalInfo)
		if err != nil {
			return nil, err
		}
		set.AdditionalInfo = doc
	}

	doc, err = deps.Reader.ReadDocument(deps.Ctx, claims, draftclaim.RoleClaims)
	if err != nil {
		return nil, err
	}
	set.Claims = doc

	return set, nil
}
