package driven

import (
	"context"

	"github.com/custodia-labs/scholar-cli/internal/core/domain"
)

// IndexStore persists the retrieval index as an append-only log.
//
// The log is textual and round-trippable: embeddings are written as
// text and parsed back into vectors on read. Rows are never updated
// or deleted in normal operation; duplicate rows are tolerated.
type IndexStore interface {
	// Append writes one record to the end of the log.
	Append(ctx context.Context, record domain.DocumentRecord) error

	// List returns all records in insertion order.
	List(ctx context.Context) ([]domain.DocumentRecord, error)

	// Len returns the number of records.
	Len(ctx context.Context) (int, error)
}

// TextExtractor turns a downloaded source file into plain text for
// tokenization.
type TextExtractor interface {
	// Extract reads the file at path and returns its text content.
	Extract(path string) (string, error)
}

// Tokenizer encodes text to model tokens and back.
//
// Decode is the inverse of Encode: decoding the concatenation of
// token subsequences reproduces the original text.
type Tokenizer interface {
	// Encode converts text into a token sequence.
	Encode(text string) []int

	// Decode converts a token sequence back into text.
	Decode(tokens []int) string
}
