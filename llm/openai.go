package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/sinu-sinu/content-automation-ai/config"
)

// OpenAIClient implements Client on the official openai-go SDK.
// One instance is created per process and shared by every agent.
type OpenAIClient struct {
	client  openai.Client
	agents  map[Role]config.Agent
	timeout time.Duration
}

// NewOpenAIClient builds the client from config; the API key comes from
// OPENAI_API_KEY only.
func NewOpenAIClient(cfg *config.Config) (*OpenAIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.LLM.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.LLM.BaseURL))
	}

	return &OpenAIClient{
		client: openai.NewClient(opts...),
		agents: map[Role]config.Agent{
			RoleScout:     cfg.LLM.Scout,
			RoleWriter:    cfg.LLM.Writer,
			RoleValidator: cfg.LLM.Validator,
			RoleMetadata:  cfg.LLM.Metadata,
		},
		timeout: time.Duration(cfg.LLM.CallTimeoutSec) * time.Second,
	}, nil
}

// Complete runs one chat completion with the role's model settings.
func (c *OpenAIClient) Complete(ctx context.Context, role Role, req Request) (string, error) {
	agent, ok := c.agents[role]
	if !ok {
		return "", fmt.Errorf("unknown llm role %q", role)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(agent.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		Temperature: openai.Float(agent.Temperature),
		MaxTokens:   openai.Int(int64(agent.MaxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("openai %s call: %w", role, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai %s call: %w: empty completion", role, ErrInvalidResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
