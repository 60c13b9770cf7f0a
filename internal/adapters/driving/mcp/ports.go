package mcp

import (
	"github.com/custodia-labs/scholar-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Librarian searches the remote catalogue and ranks the local cache.
	Librarian driving.Librarian

	// Summarizer summarizes the cached paper most relevant to a query.
	Summarizer driving.Summarizer
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Librarian == nil {
		return ErrMissingLibrarian
	}
	if p.Summarizer == nil {
		return ErrMissingSummarizer
	}
	return nil
}
