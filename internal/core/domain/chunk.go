package domain

// Chunk is a bounded contiguous slice of a document's token stream.
// Chunks are transient; they exist only for the duration of one
// summarization request.
type Chunk struct {
	// Tokens is the chunk's token sequence.
	Tokens []int

	// Ordinal is the chunk's position in document order, starting at 0.
	Ordinal int
}

// ChunkSummary is the summary of a single chunk produced by the
// worker pool. Summaries complete in arbitrary order; the Ordinal
// ties each one back to its place in the document.
type ChunkSummary struct {
	// Ordinal is the source chunk's position in document order.
	Ordinal int

	// Text is the summary text.
	Text string
}
