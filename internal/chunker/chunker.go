// Package chunker splits tokenized text into sentence-boundary-aware,
// token-bounded chunks for map-reduce summarization.
package chunker

import (
	"strings"

	"github.com/custodia-labs/scholar-cli/internal/core/domain"
	"github.com/custodia-labs/scholar-cli/internal/core/ports/driven"
)

// DefaultTargetSize is the default number of tokens per chunk.
const DefaultTargetSize = 1500

// Chunker splits a token stream into chunks of roughly targetSize
// tokens, preferring to cut at sentence boundaries.
type Chunker struct {
	tokenizer  driven.Tokenizer
	targetSize int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithTargetSize sets the target chunk size in tokens.
func WithTargetSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.targetSize = size
		}
	}
}

// New creates a chunker using the given tokenizer to decode candidate
// chunk boundaries.
func New(tokenizer driven.Tokenizer, opts ...Option) *Chunker {
	c := &Chunker{
		tokenizer:  tokenizer,
		targetSize: DefaultTargetSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chunk splits tokens into chunks in a single forward pass.
//
// For each chunk the cut point is searched between 0.5x and 1.5x the
// target size, scanning backward from the far end for the first
// boundary whose decoded text ends in a period or newline. If no such
// boundary exists in the window, the chunk is cut at exactly the
// target size. The final chunk may be shorter.
//
// The chunks partition the input exactly: concatenating their token
// ranges reconstructs the original sequence with no gaps or overlaps.
func (c *Chunker) Chunk(tokens []int) []domain.Chunk {
	if len(tokens) == 0 {
		return nil
	}

	var chunks []domain.Chunk
	i := 0
	ordinal := 0

	for i < len(tokens) {
		lo := i + c.targetSize/2
		hi := i + c.targetSize + c.targetSize/2
		if hi > len(tokens) {
			hi = len(tokens)
		}

		j := hi
		for j > lo {
			if c.endsSentence(tokens[i:j]) {
				break
			}
			j--
		}
		if j == lo {
			// No sentence boundary in the window; cut at the target.
			j = i + c.targetSize
			if j > len(tokens) {
				j = len(tokens)
			}
		}

		chunks = append(chunks, domain.Chunk{
			Tokens:  tokens[i:j],
			Ordinal: ordinal,
		})
		ordinal++
		i = j
	}

	return chunks
}

// endsSentence reports whether the decoded chunk ends at a sentence
// boundary. Decoding only the last token is enough: token decoding
// concatenates per-token byte strings, so the chunk's suffix is the
// last token's suffix.
func (c *Chunker) endsSentence(chunk []int) bool {
	if len(chunk) == 0 {
		return false
	}
	text := c.tokenizer.Decode(chunk[len(chunk)-1:])
	return strings.HasSuffix(text, ".") || strings.HasSuffix(text, "\n")
}
