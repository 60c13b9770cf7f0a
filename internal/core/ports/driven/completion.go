package driven

import (
	"context"

	"github.com/custodia-labs/scholar-cli/internal/core/domain"
)

// CompletionService produces chat completions from a message transcript.
//
// Implementations may include:
//   - OpenAI (gpt-4o, gpt-4o-mini)
//   - Any OpenAI-compatible inference server (Ollama, LM Studio)
type CompletionService interface {
	// Complete sends the transcript (and the declared tool schemas,
	// if any) to the model and returns either free text or a tool
	// call, never both.
	//
	// Transient transport failures are retried internally with bounded
	// randomized exponential backoff; exhaustion surfaces an error
	// wrapping domain.ErrCompletionUnavailable.
	Complete(ctx context.Context, messages []domain.Message, opts CompleteOptions) (*CompletionResult, error)

	// ModelName returns the name of the model being used.
	ModelName() string
}

// CompleteOptions configures a single completion request.
type CompleteOptions struct {
	// Tools are the tool schemas offered to the model. When empty the
	// model can only answer directly.
	Tools []domain.ToolSchema

	// Temperature controls sampling randomness (0 = deterministic
	// preference).
	Temperature float64

	// MaxTokens caps the response length. Zero means provider default.
	MaxTokens int
}

// CompletionResult is the outcome of one completion request.
// Exactly one of Text or ToolCall is meaningful: a non-nil ToolCall
// means the model asked for a tool instead of answering.
type CompletionResult struct {
	// Text is the model's direct answer.
	Text string

	// ToolCall is the requested tool invocation, nil for direct answers.
	ToolCall *domain.ToolCall
}

// EmbeddingService generates vector embeddings from text.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Any OpenAI-compatible embedding endpoint
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	//
	// Transient transport failures are retried internally with bounded
	// randomized exponential backoff; exhaustion surfaces an error
	// wrapping domain.ErrRetrievalUnavailable.
	Embed(ctx context.Context, text string) ([]float32, error)

	// ModelName returns the name of the embedding model being used.
	ModelName() string
}
