package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/siddhant230/draftclaim"
	"github.com/siddhant230/draftclaim/config"
	"github.com/siddhant230/draftclaim/docx"
	"github.com/siddhant230/draftclaim/ollama"
	"github.com/siddhant230/draftclaim/openai"
	dcslog "github.com/siddhant230/draftclaim/slog"
	"github.com/siddhant230/draftclaim/sqlite"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Configuration file path. Set before calling Run().
	ConfigPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RunService    draftclaim.RunService
	AnswerService draftclaim.AnswerService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultDBPath(),
		ConfigPath: defaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// llmClient is what a provider must implement to back the generation
// commands.
type llmClient interface {
	draftclaim.Answerer
	draftclaim.Analyzer
	draftclaim.ModelService
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("draftclaim"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'draftclaim --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(m.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Fix or remove the configuration file at %q\n", m.ConfigPath)
		return err
	}
	deps.Config = cfg

	// DRAFTCLAIM_DB beats the config file; the config file beats the
	// built-in default.
	if cfg.Database.Path != "" && os.Getenv("DRAFTCLAIM_DB") == "" {
		m.DBPath = cfg.Database.Path
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DRAFTCLAIM_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Commands log to stderr so streamed model output on stdout stays
	// clean. The server is chatty; everything else only reports failures.
	level := slog.LevelWarn
	if cmd == "serve" {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	// Wire core services into dependencies
	m.RunService = sqlite.NewRunService(m.DB)
	m.AnswerService = sqlite.NewAnswerService(m.DB)
	deps.DB = m.DB
	deps.Runs = m.RunService
	deps.Answers = m.AnswerService
	deps.Reader = dcslog.NewLoggingDocumentReader(docx.NewReader(), logger)

	outputDir := cfg.Output.Dir
	if dir := os.Getenv("DRAFTCLAIM_OUTPUT_DIR"); dir != "" {
		outputDir = dir
	}
	if cmd == "analyze" && cli.Analyze.OutputDir != "" {
		outputDir = cli.Analyze.OutputDir
	}
	deps.Reports = dcslog.NewLoggingReportWriter(docx.NewWriter(outputDir), logger)

	deps.Model = cfg.Provider.Model
	if deps.Model == "" {
		deps.Model = defaultModel
	}

	// Wire the generation endpoint for the commands that talk to a model
	switch cmd {
	case "models", "analyze", "verify", "serve", "tui":
		var client llmClient
		switch cfg.Provider.Name {
		case config.ProviderOpenAI:
			apiKey := cfg.Provider.APIKey
			if key := os.Getenv("OPENAI_API_KEY"); key != "" {
				apiKey = key
			}
			c, err := openai.NewClient(openai.Config{APIKey: apiKey, BaseURL: cfg.Provider.BaseURL})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Set OPENAI_API_KEY or provider.apiKey in the configuration file")
				return err
			}
			client = c
		default:
			opts := []ollama.Option{}
			baseURL := cfg.Provider.BaseURL
			if u := os.Getenv("DRAFTCLAIM_OLLAMA_URL"); u != "" {
				baseURL = u
			}
			if baseURL != "" {
				opts = append(opts, ollama.WithBaseURL(baseURL))
			}
			if cfg.Provider.TimeoutSeconds > 0 {
				opts = append(opts, ollama.WithTimeout(cfg.Timeout()))
			}
			client = ollama.NewClient(opts...)
		}
		deps.Answerer = dcslog.NewLoggingAnswerer(client, logger)
		deps.Analyzer = dcslog.NewLoggingAnalyzer(client, logger)
		deps.Models = dcslog.NewLoggingModelService(client, logger)
	}

	return kongCtx.Run(deps)
}

// defaultModel is used when neither the configuration file nor --model
// names one.
const defaultModel = "llama3.2"

func defaultDBPath() string {
	if path := os.Getenv("DRAFTCLAIM_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "draftclaim.db"
	}
	dir := filepath.Join(home, ".draftclaim")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "draftclaim.db")
}

func defaultConfigPath() string {
	if path := os.Getenv("DRAFTCLAIM_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "draftclaim.yaml"
	}
	return filepath.Join(home, ".draftclaim", "config.yaml")
}
