// Package tiktoken adapts the tiktoken BPE tokenizer to the
// Tokenizer port. Chunk boundaries are computed over these tokens, so
// the encoding must match the completion model family.
package tiktoken

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/custodia-labs/scholar-cli/internal/core/ports/driven"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// DefaultEncoding is the encoding used by current OpenAI chat models.
const DefaultEncoding = "cl100k_base"

// Tokenizer encodes and decodes model tokens.
type Tokenizer struct {
	encoding *tiktoken.Tiktoken
}

// New creates a tokenizer for the named encoding. An empty name
// selects DefaultEncoding.
func New(encodingName string) (*Tokenizer, error) {
	if encodingName == "" {
		encodingName = DefaultEncoding
	}
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("load encoding %q: %w", encodingName, err)
	}
	return &Tokenizer{encoding: encoding}, nil
}

// Encode converts text into a token sequence.
func (t *Tokenizer) Encode(text string) []int {
	return t.encoding.Encode(text, nil, nil)
}

// Decode converts a token sequence back into text.
func (t *Tokenizer) Decode(tokens []int) string {
	return t.encoding.Decode(tokens)
}
