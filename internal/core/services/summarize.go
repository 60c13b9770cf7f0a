package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/scholar-cli/internal/chunker"
	"github.com/custodia-labs/scholar-cli/internal/core/domain"
	"github.com/custodia-labs/scholar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/scholar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/scholar-cli/internal/logger"
)

// Ensure MapReduceSummarizer implements the interface.
var _ driving.Summarizer = (*MapReduceSummarizer)(nil)

// FailurePolicy decides what happens when a chunk summarization
// request fails.
type FailurePolicy int

const (
	// AbortOnError propagates the first chunk failure and discards the
	// remaining in-flight results. No partial summary is produced.
	AbortOnError FailurePolicy = iota

	// BestEffort replaces a failed chunk's summary with an empty
	// string and carries on with the reduction.
	BestEffort
)

// chunkPrompt is the fixed instruction prefix for per-chunk
// summarization (the map step).
const chunkPrompt = `Summarize this text from an academic paper. Extract any key points with reasoning.

Content:
`

// reducePrompt frames the final reduction request. It embeds the
// user's query and the chunk summaries in document order.
const reducePrompt = `Write a summary collated from this collection of key points extracted from an academic paper.
The summary should highlight the core argument, conclusions and evidence, and answer the user's query:

%s

The summary should be structured in bulleted lists following the headings Core Argument, Evidence, and Conclusions.

Key points:
%s

Summary:
`

// MapReduceSummarizer answers a query from the single most relevant
// cached paper: rank, extract, chunk, summarize each chunk
// concurrently (map), then combine the chunk summaries in document
// order with one final completion (reduce).
type MapReduceSummarizer struct {
	librarian  driving.Librarian
	extractor  driven.TextExtractor
	tokenizer  driven.Tokenizer
	completion driven.CompletionService
	chunker    *chunker.Chunker
	policy     FailurePolicy
}

// SummarizerOption configures the summarizer.
type SummarizerOption func(*MapReduceSummarizer)

// WithFailurePolicy sets the chunk failure policy.
func WithFailurePolicy(policy FailurePolicy) SummarizerOption {
	return func(s *MapReduceSummarizer) {
		s.policy = policy
	}
}

// NewMapReduceSummarizer creates a map-reduce summarizer.
func NewMapReduceSummarizer(
	librarian driving.Librarian,
	extractor driven.TextExtractor,
	tokenizer driven.Tokenizer,
	completion driven.CompletionService,
	chk *chunker.Chunker,
	opts ...SummarizerOption,
) *MapReduceSummarizer {
	s := &MapReduceSummarizer{
		librarian:  librarian,
		extractor:  extractor,
		tokenizer:  tokenizer,
		completion: completion,
		chunker:    chk,
		policy:     AbortOnError,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize produces the final structured summary for the query.
//
// An empty index is not an error here: the summarizer bootstraps the
// cache with a search for the same query and proceeds. The recovery
// is logged so it stays observable.
func (s *MapReduceSummarizer) Summarize(ctx context.Context, query string) (string, error) {
	paths, err := s.librarian.Rank(ctx, query, 1)
	if errors.Is(err, domain.ErrEmptyIndex) {
		logger.Info("Index is empty; fetching papers for %q before summarizing", query)
		if _, err := s.librarian.SearchAndCache(ctx, query); err != nil {
			return "", fmt.Errorf("bootstrap index: %w", err)
		}
		paths, err = s.librarian.Rank(ctx, query, 1)
	}
	if err != nil {
		return "", fmt.Errorf("rank papers: %w", err)
	}

	text, err := s.extractor.Extract(paths[0])
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", paths[0], err)
	}

	tokens := s.tokenizer.Encode(text)
	chunks := s.chunker.Chunk(tokens)
	if len(chunks) == 0 {
		return "", fmt.Errorf("%w: paper %s has no text content", domain.ErrInvalidInput, paths[0])
	}
	logger.Info("Summarizing %s: %d tokens in %d chunks", paths[0], len(tokens), len(chunks))

	summaries, err := s.summarizeChunks(ctx, chunks)
	if err != nil {
		return "", err
	}

	return s.reduce(ctx, query, summaries)
}

// summarizeChunks fans out one completion request per chunk and joins
// all of them before returning. Tasks share no mutable state; each
// writes only its own result slot.
func (s *MapReduceSummarizer) summarizeChunks(ctx context.Context, chunks []domain.Chunk) ([]domain.ChunkSummary, error) {
	results := make([]domain.ChunkSummary, len(chunks))
	errs := make([]error, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk domain.Chunk) {
			defer wg.Done()
			text, err := s.summarizeChunk(ctx, chunk)
			if err != nil {
				errs[i] = fmt.Errorf("chunk %d: %w", chunk.Ordinal, err)
				return
			}
			results[i] = domain.ChunkSummary{Ordinal: chunk.Ordinal, Text: text}
		}(i, chunk)
	}
	wg.Wait()

	for i, err := range errs {
		if err == nil {
			continue
		}
		if s.policy == AbortOnError {
			return nil, err
		}
		logger.Warn("Continuing without failed chunk: %v", err)
		results[i] = domain.ChunkSummary{Ordinal: chunks[i].Ordinal, Text: ""}
	}

	return results, nil
}

// summarizeChunk issues one deterministic completion for a single chunk.
func (s *MapReduceSummarizer) summarizeChunk(ctx context.Context, chunk domain.Chunk) (string, error) {
	prompt := chunkPrompt + s.tokenizer.Decode(chunk.Tokens)
	result, err := s.completion.Complete(ctx, []domain.Message{
		{Role: domain.RoleUser, Content: prompt},
	}, driven.CompleteOptions{Temperature: 0})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Text), nil
}

// reduce issues the single final completion over the chunk summaries
// in document order. Ordering is by ordinal, never by completion
// timing, so the output is reproducible.
func (s *MapReduceSummarizer) reduce(ctx context.Context, query string, summaries []domain.ChunkSummary) (string, error) {
	parts := make([]string, len(summaries))
	for _, summary := range summaries {
		parts[summary.Ordinal] = summary.Text
	}

	prompt := fmt.Sprintf(reducePrompt, query, strings.Join(parts, "\n"))
	result, err := s.completion.Complete(ctx, []domain.Message{
		{Role: domain.RoleUser, Content: prompt},
	}, driven.CompleteOptions{Temperature: 0})
	if err != nil {
		return "", fmt.Errorf("reduce summaries: %w", err)
	}
	return strings.TrimSpace(result.Text), nil
}
