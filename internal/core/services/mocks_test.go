package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/scholar-cli/internal/core/domain"
	"github.com/custodia-labs/scholar-cli/internal/core/ports/driven"
)

// --- Mock implementations of driven ports ---

// mockCompletion implements driven.CompletionService with a scripted
// respond function. Calls are recorded for assertions.
type mockCompletion struct {
	mu      sync.Mutex
	calls   [][]domain.Message
	opts    []driven.CompleteOptions
	respond func(messages []domain.Message, opts driven.CompleteOptions) (*driven.CompletionResult, error)
}

func (m *mockCompletion) Complete(_ context.Context, messages []domain.Message, opts driven.CompleteOptions) (*driven.CompletionResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, messages)
	m.opts = append(m.opts, opts)
	respond := m.respond
	m.mu.Unlock()
	return respond(messages, opts)
}

func (m *mockCompletion) ModelName() string { return "mock-llm" }

func (m *mockCompletion) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockEmbedder implements driven.EmbeddingService, returning a fixed
// vector per input text.
type mockEmbedder struct {
	mu         sync.Mutex
	embeddings map[string][]float32
	fallback   []float32
	embedErr   error
	calls      []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	m.mu.Unlock()
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if v, ok := m.embeddings[text]; ok {
		return v, nil
	}
	return m.fallback, nil
}

func (m *mockEmbedder) ModelName() string { return "mock-embed" }

// mockProvider implements driven.PaperProvider.
type mockProvider struct {
	results     []driven.PaperResult
	searchErr   error
	downloadErr error
	searches    []string
	downloads   int
}

func (m *mockProvider) Search(_ context.Context, query string, limit int) ([]driven.PaperResult, error) {
	m.searches = append(m.searches, query)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if limit < len(m.results) {
		return m.results[:limit], nil
	}
	return m.results, nil
}

func (m *mockProvider) Download(_ context.Context, result driven.PaperResult, dir string) (string, error) {
	m.downloads++
	if m.downloadErr != nil {
		return "", m.downloadErr
	}
	return dir + "/" + result.Title + ".pdf", nil
}

// mockIndexStore implements driven.IndexStore in memory.
type mockIndexStore struct {
	mu      sync.Mutex
	records []domain.DocumentRecord
}

func (m *mockIndexStore) Append(_ context.Context, record domain.DocumentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *mockIndexStore) List(_ context.Context) ([]domain.DocumentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.DocumentRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *mockIndexStore) Len(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records), nil
}

// byteTokenizer implements driven.Tokenizer over raw bytes, so token
// subsequences decode back to exact substrings.
type byteTokenizer struct{}

func (byteTokenizer) Encode(text string) []int {
	tokens := make([]int, len(text))
	for i := 0; i < len(text); i++ {
		tokens[i] = int(text[i])
	}
	return tokens
}

func (byteTokenizer) Decode(tokens []int) string {
	b := make([]byte, len(tokens))
	for i, t := range tokens {
		b[i] = byte(t)
	}
	return string(b)
}

// mockExtractor implements driven.TextExtractor.
type mockExtractor struct {
	texts map[string]string
	err   error
}

func (m *mockExtractor) Extract(path string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	text, ok := m.texts[path]
	if !ok {
		return "", fmt.Errorf("no text for %s", path)
	}
	return text, nil
}

// mockLibrarian implements driving.Librarian with scripted rank
// outcomes, one per call.
type mockLibrarian struct {
	rankPaths [][]string
	rankErrs  []error
	rankCalls int
	searches  []string
	searchErr error
}

func (m *mockLibrarian) SearchAndCache(_ context.Context, query string) ([]domain.DocumentSummary, error) {
	m.searches = append(m.searches, query)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return []domain.DocumentSummary{{Title: "stub", URL: "https://example.org"}}, nil
}

func (m *mockLibrarian) Rank(_ context.Context, _ string, _ int) ([]string, error) {
	i := m.rankCalls
	m.rankCalls++
	if i < len(m.rankErrs) && m.rankErrs[i] != nil {
		return nil, m.rankErrs[i]
	}
	if i < len(m.rankPaths) {
		return m.rankPaths[i], nil
	}
	return nil, domain.ErrEmptyIndex
}
