package driving

import (
	"context"

	"github.com/custodia-labs/scholar-cli/internal/core/domain"
)

// Assistant answers one conversational turn, deciding whether a tool
// call is warranted and feeding its output back into the transcript.
type Assistant interface {
	// Answer runs one decide/execute/continue cycle over the
	// transcript and returns the user-facing answer. The transcript
	// is mutated in place: the answer (and any intermediate function
	// message) is appended before returning.
	Answer(ctx context.Context, transcript *domain.Transcript) (string, error)
}

// Librarian maintains the local paper cache and ranks it against
// queries.
type Librarian interface {
	// SearchAndCache searches the remote catalogue, downloads each
	// hit's source file, embeds its title and appends a record per
	// hit. Returns lightweight summaries for display.
	SearchAndCache(ctx context.Context, query string) ([]domain.DocumentSummary, error)

	// Rank returns the local paths of cached papers ordered by
	// descending similarity to the query.
	Rank(ctx context.Context, query string, topN int) ([]string, error)
}

// Summarizer produces a single structured summary of the cached paper
// most relevant to a query.
type Summarizer interface {
	// Summarize ranks the cache against the query, splits the best
	// paper into chunks, summarizes them concurrently and reduces the
	// chunk summaries into one final answer.
	Summarize(ctx context.Context, query string) (string, error)
}
