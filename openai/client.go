// Package openai provides model generation through the OpenAI chat
// completions API, including compatible local servers such as vLLM and
// LM Studio.
package openai

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/siddhant230/draftclaim"
)

// Compile-time interface checks.
var (
	_ draftclaim.Answerer     = (*Client)(nil)
	_ draftclaim.Analyzer     = (*Client)(nil)
	_ draftclaim.ModelService = (*Client)(nil)
)

// Config carries the endpoint settings.
type Config struct {
	// APIKey authenticates requests. Required.
	APIKey string

	// BaseURL overrides the default endpoint for compatible servers.
	// Optional.
	BaseURL string
}

// Client generates text through a chat completions endpoint.
type Client struct {
	client *openai.Client
}

// NewClient creates a Client. Returns EINVALID when the config carries
// no API key.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, draftclaim.Errorf(draftclaim.EINVALID, "OpenAI API key required")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &Client{client: openai.NewClientWithConfig(clientConfig)}, nil
}

// Answer generates an answer to a verification question.
func (c *Client) Answer(ctx context.Context, req draftclaim.AnswerRequest, stream draftclaim.StreamFunc) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: draftclaim.BuildAnswerSystemPrompt(req)},
		{Role: openai.ChatMessageRoleUser, Content: draftclaim.BuildAnswerUserPrompt(req)},
	}
	return c.chat(ctx, req.Model, messages, stream)
}

// Analyze generates the comparative claims analysis.
func (c *Client) Analyze(ctx context.Context, req draftclaim.AnalysisRequest, stream draftclaim.StreamFunc) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: draftclaim.BuildAnalysisPrompt(req)},
	}
	return c.chat(ctx, req.Model, messages, stream)
}

// ListModels returns the models the endpoint serves.
func (c *Client) ListModels(ctx context.Context) ([]draftclaim.Model, error) {
	list, err := c.client.ListModels(ctx)
	if err != nil {
		return nil, draftclaim.WrapErrorf(err, draftclaim.EUNAVAILABLE, "cannot list models")
	}
	models := make([]draftclaim.Model, 0, len(list.Models))
	for _, m := range list.Models {
		models = append(models, draftclaim.Model{
			Name:       m.ID,
			ModifiedAt: time.Unix(m.CreatedAt, 0).UTC(),
		})
	}
	return models, nil
}

func (c *Client) chat(ctx context.Context, model string, messages []openai.ChatCompletionMessage, stream draftclaim.StreamFunc) (string, error) {
	s, err := c.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		return "", draftclaim.WrapErrorf(err, draftclaim.EUNAVAILABLE, "cannot reach chat completions endpoint")
	}
	defer s.Close()

	var sb strings.Builder
	for {
		resp, err := s.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", draftclaim.WrapErrorf(err, draftclaim.EUNAVAILABLE, "chat completions stream interrupted")
		}
		if len(resp.Choices) == 0 {
			continue
		}
		delta := resp.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		sb.WriteString(delta)
		if stream != nil {
			stream(delta)
		}
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", draftclaim.Errorf(draftclaim.EUNAVAILABLE, "model %s returned no text", model)
	}
	return text, nil
}
