package mcp

import (
	"context"

	"github.com/custodia-labs/scholar-cli/internal/core/domain"
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

func (m *mockLibrarian) Rank(_ context.Context, query string, _ int) ([]string, error) {
	m.queries = append(m.queries, query)
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
