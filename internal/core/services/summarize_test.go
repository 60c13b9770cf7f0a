package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scholar-cli/internal/chunker"
	"github.com/custodia-labs/scholar-cli/internal/core/domain"
	"github.com/custodia-labs/scholar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/scholar-cli/internal/logger"
)

// summarizeHarness wires a MapReduceSummarizer over mocks. The paper
// text "aaaa.bbbb.cccc." chunks into exactly three sentence-aligned
// chunks with a byte tokenizer and a target size of 5.
type summarizeHarness struct {
	librarian  *mockLibrarian
	completion *mockCompletion

	mu           sync.Mutex
	reducePrompt string
	mapOrder     []string
}

const harnessPaperText = "aaaa.bbbb.cccc."

func newSummarizeHarness(t *testing.T, opts ...SummarizerOption) (*summarizeHarness, *MapReduceSummarizer) {
	t.Helper()

	h := &summarizeHarness{
		librarian: &mockLibrarian{rankPaths: [][]string{{"paper.pdf"}}},
	}
	h.completion = &mockCompletion{respond: h.respond}

	extractor := &mockExtractor{texts: map[string]string{"paper.pdf": harnessPaperText}}
	tok := byteTokenizer{}
	s := NewMapReduceSummarizer(
		h.librarian,
		extractor,
		tok,
		h.completion,
		chunker.New(tok, chunker.WithTargetSize(5)),
		opts...,
	)
	return h, s
}

// respond answers map requests with "S-<chunk text>" and records the
// reduce prompt. Later chunks finish first, simulating out-of-order
// completion.
func (h *summarizeHarness) respond(messages []domain.Message, _ driven.CompleteOptions) (*driven.CompletionResult, error) {
	prompt := messages[len(messages)-1].Content

	if text, ok := strings.CutPrefix(prompt, chunkPrompt); ok {
		switch text {
		case "aaaa.":
			time.Sleep(30 * time.Millisecond)
		case "bbbb.":
			time.Sleep(15 * time.Millisecond)
		}
		h.mu.Lock()
		h.mapOrder = append(h.mapOrder, text)
		h.mu.Unlock()
		return &driven.CompletionResult{Text: "S-" + text}, nil
	}

	h.mu.Lock()
	h.reducePrompt = prompt
	h.mu.Unlock()
	return &driven.CompletionResult{Text: "final summary"}, nil
}

func TestSummarizeReducesInDocumentOrder(t *testing.T) {
	h, s := newSummarizeHarness(t)

	answer, err := s.Summarize(context.Background(), "what is aaaa?")
	require.NoError(t, err)
	assert.Equal(t, "final summary", answer)

	// Chunks completed out of document order...
	require.Len(t, h.mapOrder, 3)
	assert.NotEqual(t, []string{"aaaa.", "bbbb.", "cccc."}, h.mapOrder)

	// ...but the reduction sees them in document order regardless.
	assert.Contains(t, h.reducePrompt, "S-aaaa.\nS-bbbb.\nS-cccc.")
	assert.Contains(t, h.reducePrompt, "what is aaaa?")
}

func TestSummarizeUsesDeterministicSampling(t *testing.T) {
	h, s := newSummarizeHarness(t)

	_, err := s.Summarize(context.Background(), "q")
	require.NoError(t, err)

	for _, opts := range h.completion.opts {
		assert.Zero(t, opts.Temperature)
		assert.Empty(t, opts.Tools)
	}
}

func TestSummarizeAbortsOnChunkFailure(t *testing.T) {
	h, s := newSummarizeHarness(t)
	boom := errors.New("boom")
	inner := h.completion.respond
	h.completion.respond = func(messages []domain.Message, opts driven.CompleteOptions) (*driven.CompletionResult, error) {
		prompt := messages[len(messages)-1].Content
		if strings.Contains(prompt, "bbbb.") {
			return nil, boom
		}
		return inner(messages, opts)
	}

	_, err := s.Summarize(context.Background(), "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// No reduction happened.
	assert.Empty(t, h.reducePrompt)
}

func TestSummarizeBestEffortSubstitutesEmptySummary(t *testing.T) {
	h, s := newSummarizeHarness(t, WithFailurePolicy(BestEffort))
	inner := h.completion.respond
	h.completion.respond = func(messages []domain.Message, opts driven.CompleteOptions) (*driven.CompletionResult, error) {
		prompt := messages[len(messages)-1].Content
		if strings.Contains(prompt, "bbbb.") {
			return nil, errors.New("boom")
		}
		return inner(messages, opts)
	}

	answer, err := s.Summarize(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "final summary", answer)
	assert.Contains(t, h.reducePrompt, "S-aaaa.\n\nS-cccc.")
}

func TestSummarizeBootstrapsEmptyIndex(t *testing.T) {
	defer func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	}()
	var logs bytes.Buffer
	logger.SetOutput(&logs)
	logger.SetVerbose(true)

	h, s := newSummarizeHarness(t)
	h.librarian.rankErrs = []error{domain.ErrEmptyIndex, nil}
	h.librarian.rankPaths = [][]string{nil, {"paper.pdf"}}

	answer, err := s.Summarize(context.Background(), "fresh topic")
	require.NoError(t, err)
	assert.Equal(t, "final summary", answer)

	// The recovery searched with the same query and was logged.
	assert.Equal(t, []string{"fresh topic"}, h.librarian.searches)
	assert.Contains(t, logs.String(), "Index is empty")
}

func TestSummarizeBootstrapFailureSurfaces(t *testing.T) {
	h, s := newSummarizeHarness(t)
	h.librarian.rankErrs = []error{domain.ErrEmptyIndex}
	h.librarian.rankPaths = nil
	h.librarian.searchErr = errors.New("provider down")

	_, err := s.Summarize(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bootstrap index")
}
