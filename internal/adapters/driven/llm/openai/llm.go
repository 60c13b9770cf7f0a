// Package openai provides a completion service adapter using OpenAI API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/custodia-labs/scholar-cli/internal/core/domain"
	"github.com/custodia-labs/scholar-cli/internal/core/ports/driven"
)

// Ensure CompletionService implements the interface.
var _ driven.CompletionService = (*CompletionService)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "https://api.openai.com/v1"
	DefaultModel      = "gpt-4o-mini"
	DefaultTimeout    = 120 * time.Second
	DefaultMaxRetries = 4
)

// Config holds configuration for the OpenAI completion service.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	// Can be changed for Azure OpenAI or compatible APIs.
	BaseURL string

	// Model is the chat model to use (default: gpt-4o-mini).
	Model string

	// Timeout is the per-request timeout (default: 120s).
	Timeout time.Duration

	// MaxRetries bounds the retry attempts on transient failures
	// (default: 4).
	MaxRetries int
}

// CompletionService produces chat completions using the OpenAI API,
// with function calling for tool dispatch. Transient failures are
// retried with randomized exponential backoff; exhaustion wraps
// domain.ErrCompletionUnavailable.
type CompletionService struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	model      string
	maxRetries int
}

// chatCompletionRequest is the OpenAI /chat/completions request format.
type chatCompletionRequest struct {
	Model        string              `json:"model"`
	Messages     []chatCompletionMsg `json:"messages"`
	Functions    []functionDef       `json:"functions,omitempty"`
	FunctionCall string              `json:"function_call,omitempty"`
	MaxTokens    int                 `json:"max_tokens,omitempty"`
	Temperature  *float64            `json:"temperature,omitempty"`
}

// chatCompletionMsg is the OpenAI chat message format.
type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

// functionDef declares a callable function to the model.
type functionDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters"`
}

// functionCall is the model's request to invoke a function.
type functionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// chatCompletionResponse is the OpenAI /chat/completions response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content      string        `json:"content"`
			FunctionCall *functionCall `json:"function_call,omitempty"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewCompletionService creates a new OpenAI completion service.
func NewCompletionService(cfg Config) (*CompletionService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}

	return &CompletionService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
	}, nil
}

// Complete sends the transcript to the model and returns either a
// direct answer or a tool call.
func (s *CompletionService) Complete(ctx context.Context, messages []domain.Message, opts driven.CompleteOptions) (*driven.CompletionResult, error) {
	reqBody := s.buildRequest(messages, opts)

	var result *driven.CompletionResult
	operation := func() error {
		var err error
		result, err = s.completeOnce(ctx, reqBody)
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(s.maxRetries)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCompletionUnavailable, err)
	}
	return result, nil
}

// buildRequest converts domain messages and options to the wire format.
func (s *CompletionService) buildRequest(messages []domain.Message, opts driven.CompleteOptions) chatCompletionRequest {
	wireMessages := make([]chatCompletionMsg, len(messages))
	for i, msg := range messages {
		wireMessages[i] = chatCompletionMsg{
			Role:    string(msg.Role),
			Content: msg.Content,
			Name:    msg.Name,
		}
	}

	req := chatCompletionRequest{
		Model:       s.model,
		Messages:    wireMessages,
		Temperature: &opts.Temperature,
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}
	if len(opts.Tools) > 0 {
		req.Functions = make([]functionDef, len(opts.Tools))
		for i, tool := range opts.Tools {
			req.Functions[i] = functionDef{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			}
		}
		req.FunctionCall = "auto"
	}
	return req
}

// completeOnce issues a single completion request. Non-retryable
// failures are marked permanent so the backoff loop stops immediately.
func (s *CompletionService) completeOnce(ctx context.Context, reqBody chatCompletionRequest) (*driven.CompletionResult, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if retryable(resp.StatusCode) {
		return nil, fmt.Errorf("openai: status %d: %s", resp.StatusCode, string(body))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("openai: status %d: %s", resp.StatusCode, string(body)))
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}
	if chatResp.Error != nil {
		return nil, backoff.Permanent(fmt.Errorf("openai error: %s", chatResp.Error.Message))
	}
	if len(chatResp.Choices) == 0 {
		return nil, backoff.Permanent(fmt.Errorf("openai: no response choices returned"))
	}

	choice := chatResp.Choices[0].Message
	result := &driven.CompletionResult{Text: choice.Content}
	if choice.FunctionCall != nil {
		result.ToolCall = &domain.ToolCall{
			Name:      choice.FunctionCall.Name,
			Arguments: choice.FunctionCall.Arguments,
		}
	}
	return result, nil
}

// retryable reports whether a status code indicates a transient
// failure: rate limiting or a server-side error.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// ModelName returns the name of the model being used.
func (s *CompletionService) ModelName() string {
	return s.model
}
