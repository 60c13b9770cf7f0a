package domain

// DocumentRecord is one row of the retrieval index: a cached paper
// with the embedding of its title.
//
// Records are immutable once written and persisted append-only.
// Re-caching the same paper appends a second row; duplicates are
// tolerated, never merged.
type DocumentRecord struct {
	// Title is the paper title and the text the embedding was
	// computed from. It doubles as the record identifier.
	Title string

	// LocalPath is where the downloaded source file lives on disk.
	LocalPath string

	// Embedding is the title's vector representation.
	Embedding []float32
}

// DocumentSummary is the lightweight view of a search hit returned
// for immediate display. It carries no embedding and no file content.
type DocumentSummary struct {
	// Title is the paper title.
	Title string

	// Abstract is the provider-supplied abstract.
	Abstract string

	// URL is the landing page for the paper.
	URL string
}
