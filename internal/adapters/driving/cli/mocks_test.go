package cli

import (
	"context"

	"github.com/custodia-labs/scholar-cli/internal/core/domain"
	"github.com/custodia-labs/scholar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/scholar-cli/internal/core/ports/driving"
)

// mockLibrarian is a test double for driving.Librarian.
type mockLibrarian struct {
	summaries []domain.DocumentSummary
	paths     []string
	err       error
	queries   []string
}

var _ driving.Librarian = (*mockLibrarian)(nil)

func (m *mockLibrarian) SearchAndCache(_ context.Context, query string) ([]domain.DocumentSummary, error) {
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	return m.summaries, nil
}

func (m *mockLibrarian) Rank(_ context.Context, _ string, _ int) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.paths, nil
}

// mockSummarizer is a test double for driving.Summarizer.
type mockSummarizer struct {
	summary string
	err     error
	queries []string
}

var _ driving.Summarizer = (*mockSummarizer)(nil)

func (m *mockSummarizer) Summarize(_ context.Context, query string) (string, error) {
	m.queries = append(m.queries, query)
	if m.err != nil {
		return "", m.err
	}
	return m.summary, nil
}

// mockAssistant is a test double for driving.Assistant.
type mockAssistant struct {
	answer string
	err    error
}

var _ driving.Assistant = (*mockAssistant)(nil)

func (m *mockAssistant) Answer(_ context.Context, transcript *domain.Transcript) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	transcript.Append(domain.Message{Role: domain.RoleAssistant, Content: m.answer})
	return m.answer, nil
}

// mockIndexStore is an in-memory test double for driven.IndexStore.
type mockIndexStore struct {
	records []domain.DocumentRecord
	err     error
}

var _ driven.IndexStore = (*mockIndexStore)(nil)

func (m *mockIndexStore) Append(_ context.Context, record domain.DocumentRecord) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockIndexStore) List(_ context.Context) ([]domain.DocumentRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

func (m *mockIndexStore) Len(_ context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.records), nil
}

// setupTestServices swaps the package-level services for mocks and
// returns the mocks plus a cleanup that restores the previous state.
func setupTestServices() (*mockLibrarian, *mockSummarizer, *mockAssistant, *mockIndexStore, func()) {
	librarian := &mockLibrarian{}
	summarizer := &mockSummarizer{}
	assistant := &mockAssistant{}
	store := &mockIndexStore{}

	prevLibrarian := librarianService
	prevSummarizer := summarizerService
	prevAssistant := assistantService
	prevStore := indexStore

	librarianService = librarian
	summarizerService = summarizer
	assistantService = assistant
	indexStore = store

	cleanup := func() {
		librarianService = prevLibrarian
		summarizerService = prevSummarizer
		assistantService = prevAssistant
		indexStore = prevStore
	}
	return librarian, summarizer, assistant, store, cleanup
}
