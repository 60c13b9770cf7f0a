package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/scholar-cli/internal/core/domain"
	"github.com/custodia-labs/scholar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/scholar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/scholar-cli/internal/logger"
)

// Ensure ToolDispatcher implements the interface.
var _ driving.Assistant = (*ToolDispatcher)(nil)

// ToolHandler executes a parsed tool call and returns its string
// result for the transcript.
type ToolHandler func(ctx context.Context, req domain.ToolCallRequest) (string, error)

// Tool is a registered tool: its schema as presented to the model,
// its handler, and how its result terminates the turn.
type Tool struct {
	// Schema declares the tool to the completion service.
	Schema domain.ToolSchema

	// Handle executes the call.
	Handle ToolHandler

	// ReturnsDirect short-circuits the turn: the tool result is the
	// final answer and no follow-up completion is issued.
	ReturnsDirect bool
}

// ToolDispatcher decides, turn by turn, whether a request needs a
// tool call, executes at most one, and feeds the result back into the
// transcript.
//
// Tools live in a registry keyed by name: adding a tool is one
// Register call, not a new dispatch branch.
type ToolDispatcher struct {
	completion driven.CompletionService
	tools      map[string]Tool
	order      []string
}

// NewToolDispatcher creates a dispatcher with no tools registered.
func NewToolDispatcher(completion driven.CompletionService) *ToolDispatcher {
	return &ToolDispatcher{
		completion: completion,
		tools:      make(map[string]Tool),
	}
}

// Register adds a tool to the dispatch table. Registering the same
// name twice replaces the earlier entry.
func (d *ToolDispatcher) Register(tool Tool) {
	if _, exists := d.tools[tool.Schema.Name]; !exists {
		d.order = append(d.order, tool.Schema.Name)
	}
	d.tools[tool.Schema.Name] = tool
}

// Schemas returns the registered tool schemas in registration order.
func (d *ToolDispatcher) Schemas() []domain.ToolSchema {
	schemas := make([]domain.ToolSchema, 0, len(d.order))
	for _, name := range d.order {
		schemas = append(schemas, d.tools[name].Schema)
	}
	return schemas
}

// Answer runs one conversation turn: decide, optionally execute one
// tool, and return the user-facing answer. The transcript is mutated
// in place. No loop: at most one tool call per turn.
func (d *ToolDispatcher) Answer(ctx context.Context, transcript *domain.Transcript) (string, error) {
	// Decide.
	result, err := d.completion.Complete(ctx, transcript.Messages(), driven.CompleteOptions{
		Tools: d.Schemas(),
	})
	if err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}

	if result.ToolCall == nil {
		transcript.Append(domain.Message{Role: domain.RoleAssistant, Content: result.Text})
		return result.Text, nil
	}

	// Execute.
	req, err := parseToolCall(*result.ToolCall)
	if err != nil {
		return "", err
	}
	tool, ok := d.tools[req.Name]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownTool, req.Name)
	}
	logger.Info("Dispatching tool %s", req.Name)

	output, err := tool.Handle(ctx, req)
	if err != nil {
		return "", fmt.Errorf("tool %s: %w", req.Name, err)
	}

	// Append & continue.
	transcript.Append(domain.Message{
		Role:    domain.RoleFunction,
		Name:    req.Name,
		Content: output,
	})

	if tool.ReturnsDirect {
		return output, nil
	}

	followUp, err := d.completion.Complete(ctx, transcript.Messages(), driven.CompleteOptions{})
	if err != nil {
		return "", fmt.Errorf("follow-up completion: %w", err)
	}
	transcript.Append(domain.Message{Role: domain.RoleAssistant, Content: followUp.Text})
	return followUp.Text, nil
}

// parseToolCall decodes the model's raw argument text. Invalid JSON
// is a generation defect and maps to ErrMalformedToolArguments; it is
// reported, not retried, and no tool runs.
func parseToolCall(call domain.ToolCall) (domain.ToolCallRequest, error) {
	var args map[string]any
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
		return domain.ToolCallRequest{}, fmt.Errorf("%w: %v", domain.ErrMalformedToolArguments, err)
	}
	return domain.ToolCallRequest{Name: call.Name, Args: args}, nil
}

// StringArg extracts a string argument from a tool call request.
func StringArg(req domain.ToolCallRequest, key string) (string, error) {
	value, ok := req.Args[key]
	if !ok {
		return "", fmt.Errorf("%w: missing argument %q", domain.ErrMalformedToolArguments, key)
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: argument %q is not a string", domain.ErrMalformedToolArguments, key)
	}
	return s, nil
}
