package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/scholar-cli/internal/core/domain"
	"github.com/custodia-labs/scholar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/scholar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/scholar-cli/internal/logger"
)

// Ensure RetrievalIndex implements the interface.
var _ driving.Librarian = (*RetrievalIndex)(nil)

// DefaultSearchLimit is the number of papers fetched per search.
const DefaultSearchLimit = 10

// RetrievalIndex maintains the local paper cache: remote search,
// source-file download, title embedding and similarity ranking over
// the append-only index log.
type RetrievalIndex struct {
	provider    driven.PaperProvider
	embedder    driven.EmbeddingService
	store       driven.IndexStore
	downloadDir string
	searchLimit int
}

// IndexOption configures the retrieval index.
type IndexOption func(*RetrievalIndex)

// WithSearchLimit sets the number of results fetched per search.
func WithSearchLimit(limit int) IndexOption {
	return func(s *RetrievalIndex) {
		if limit > 0 {
			s.searchLimit = limit
		}
	}
}

// NewRetrievalIndex creates a retrieval index service.
// Downloaded source files are stored under downloadDir.
func NewRetrievalIndex(
	provider driven.PaperProvider,
	embedder driven.EmbeddingService,
	store driven.IndexStore,
	downloadDir string,
	opts ...IndexOption,
) *RetrievalIndex {
	s := &RetrievalIndex{
		provider:    provider,
		embedder:    embedder,
		store:       store,
		downloadDir: downloadDir,
		searchLimit: DefaultSearchLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchAndCache searches the remote catalogue for the query,
// downloads each hit's source file, embeds its title and appends one
// record per hit to the index log.
//
// Records are appended unconditionally: repeating a query appends the
// same papers again. The returned summaries carry no embeddings and
// are suitable for immediate display.
func (s *RetrievalIndex) SearchAndCache(ctx context.Context, query string) ([]domain.DocumentSummary, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	results, err := s.provider.Search(ctx, query, s.searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search papers: %w", err)
	}
	logger.Info("Search returned %d papers for %q", len(results), query)

	summaries := make([]domain.DocumentSummary, 0, len(results))
	for _, result := range results {
		path, err := s.provider.Download(ctx, result, s.downloadDir)
		if err != nil {
			return summaries, fmt.Errorf("download %q: %w", result.Title, err)
		}

		embedding, err := s.embedder.Embed(ctx, result.Title)
		if err != nil {
			return summaries, fmt.Errorf("embed %q: %w", result.Title, err)
		}

		record := domain.DocumentRecord{
			Title:     result.Title,
			LocalPath: path,
			Embedding: embedding,
		}
		if err := s.store.Append(ctx, record); err != nil {
			return summaries, fmt.Errorf("append record: %w", err)
		}
		logger.Debug("Cached %q -> %s", result.Title, path)

		summaries = append(summaries, domain.DocumentSummary{
			Title:    result.Title,
			Abstract: result.Abstract,
			URL:      result.URL,
		})
	}

	return summaries, nil
}

// Rank embeds the query and returns the local paths of cached papers
// ordered by descending cosine similarity to it. Ties keep insertion
// order (stable sort).
//
// Returns domain.ErrEmptyIndex when no records exist; callers must
// trigger SearchAndCache first.
func (s *RetrievalIndex) Rank(ctx context.Context, query string, topN int) ([]string, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	if len(records) == 0 {
		return nil, domain.ErrEmptyIndex
	}

	queryEmbedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	type scored struct {
		path  string
		score float64
	}
	hits := make([]scored, len(records))
	for i, record := range records {
		hits[i] = scored{
			path:  record.LocalPath,
			score: cosineSimilarity(queryEmbedding, record.Embedding),
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	if topN <= 0 || topN > len(hits) {
		topN = len(hits)
	}
	paths := make([]string, topN)
	for i := 0; i < topN; i++ {
		paths[i] = hits[i].path
	}
	return paths, nil
}

// cosineSimilarity is 1 - cosineDistance(a, b). Mismatched or
// zero-magnitude vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
