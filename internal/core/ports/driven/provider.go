package driven

import "context"

// PaperResult is a single hit from the paper provider.
type PaperResult struct {
	// Title is the paper title.
	Title string

	// Abstract is the provider-supplied abstract.
	Abstract string

	// URL is the landing page for the paper.
	URL string

	// SourceURL is the downloadable source file (PDF).
	SourceURL string
}

// PaperProvider searches a remote paper catalogue and downloads
// source files for local caching.
type PaperProvider interface {
	// Search returns up to limit results for a free-text query,
	// in provider relevance order.
	Search(ctx context.Context, query string, limit int) ([]PaperResult, error)

	// Download fetches the result's source file into dir using the
	// provider's default file naming and returns the local path.
	Download(ctx context.Context, result PaperResult, dir string) (string, error)
}
