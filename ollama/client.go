// Package ollama provides answer generation, claims analysis, and model
// listing backed by a locally running Ollama server.
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/siddhant230/draftclaim"
)

// Compile-time interface checks.
var (
	_ draftclaim.Answerer     = (*Client)(nil)
	_ draftclaim.Analyzer     = (*Client)(nil)
	_ draftclaim.ModelService = (*Client)(nil)
)

// DefaultBaseURL is the Ollama server address used unless an option
// overrides it.
const DefaultBaseURL = "http://localhost:11434"

// defaultTimeout bounds one request end to end, streaming included.
const defaultTimeout = 5 * time.Minute

// Client talks to an Ollama server over its HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a non-default server address.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each request, streaming included.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a Client for the server at DefaultBaseURL unless
// options override it.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

// chatChunk is one line of the NDJSON chat stream.
type chatChunk struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

type apiError struct {
	Error string `json:"error"`
}

type tagsResponse struct {
	Models []struct {
		Name       string    `json:"name"`
		Size       int64     `json:"size"`
		ModifiedAt time.Time `json:"modified_at"`
	} `json:"models"`
}

// Answer generates an answer to a verification question. The system
// message grounds the model in the disclosure; the user message carries
// the question with any reviewer context and rejected attempt.
func (c *Client) Answer(ctx context.Context, req draftclaim.AnswerRequest, stream draftclaim.StreamFunc) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	messages := []chatMessage{
		{Role: "system", Content: draftclaim.BuildAnswerSystemPrompt(req)},
		{Role: "user", Content: draftclaim.BuildAnswerUserPrompt(req)},
	}
	return c.chat(ctx, req.Model, messages, stream)
}

// Analyze generates the comparative claims analysis as a single user
// turn.
func (c *Client) Analyze(ctx context.Context, req draftclaim.AnalysisRequest, stream draftclaim.StreamFunc) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	messages := []chatMessage{
		{Role: "user", Content: draftclaim.BuildAnalysisPrompt(req)},
	}
	return c.chat(ctx, req.Model, messages, stream)
}

// ListModels returns the models the server has pulled.
func (c *Client) ListModels(ctx context.Context) ([]draftclaim.Model, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, draftclaim.WrapErrorf(err, draftclaim.EINTERNAL, "cannot create model list request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, draftclaim.WrapErrorf(err, draftclaim.EUNAVAILABLE, "cannot reach Ollama at %s", c.baseURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, draftclaim.WrapErrorf(err, draftclaim.EUNAVAILABLE, "invalid model list from Ollama")
	}

	models := make([]draftclaim.Model, 0, len(tags.Models))
	for _, m := range tags.Models {
		models = append(models, draftclaim.Model{
			Name:       m.Name,
			Size:       m.Size,
			ModifiedAt: m.ModifiedAt,
		})
	}
	return models, nil
}

// chat posts a streaming chat request and folds the NDJSON chunks into
// one string, forwarding each delta to stream as it arrives.
func (c *Client) chat(ctx context.Context, model string, messages []chatMessage, stream draftclaim.StreamFunc) (string, error) {
	body, err := json.Marshal(chatRequest{Model: model, Messages: messages, Stream: true})
	if err != nil {
		return "", draftclaim.WrapErrorf(err, draftclaim.EINTERNAL, "cannot encode chat request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", draftclaim.WrapErrorf(err, draftclaim.EINTERNAL, "cannot create chat request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", draftclaim.WrapErrorf(err, draftclaim.EUNAVAILABLE, "cannot reach Ollama at %s", c.baseURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", responseError(resp)
	}

	var sb strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var chunk chatChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			return "", draftclaim.WrapErrorf(err, draftclaim.EUNAVAILABLE, "invalid stream chunk from Ollama")
		}
		if chunk.Message.Content != "" {
			sb.WriteString(chunk.Message.Content)
			if stream != nil {
				stream(chunk.Message.Content)
			}
		}
		if chunk.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", draftclaim.WrapErrorf(err, draftclaim.EUNAVAILABLE, "stream from Ollama interrupted")
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", draftclaim.Errorf(draftclaim.EUNAVAILABLE, "model %s returned no text", model)
	}
	return text, nil
}

func responseError(resp *http.Response) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if err == nil {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return draftclaim.Errorf(draftclaim.EUNAVAILABLE, "Ollama request failed: %s", apiErr.Error)
		}
	}
	return draftclaim.Errorf(draftclaim.EUNAVAILABLE, "Ollama request failed with status %d", resp.StatusCode)
}
