package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/scholar-cli/internal/core/services"
)

// SearchInput is the input schema for the search-documents tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the topic to search the paper catalogue for"`
}

// SearchOutput is the output schema for the search-documents tool.
type SearchOutput struct {
	Papers []PaperOutput `json:"papers"`
	Count  int           `json:"count"`
}

// PaperOutput represents a single fetched paper.
type PaperOutput struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract,omitempty"`
	URL      string `json:"url,omitempty"`
}

// SummarizeInput is the input schema for the summarize-document tool.
type SummarizeInput struct {
	Query string `json:"query" jsonschema:"the question the summary should address"`
}

// SummarizeOutput is the output schema for the summarize-document tool.
type SummarizeOutput struct {
	Summary string `json:"summary"`
}

// registerTools registers all tool handlers with the MCP server.
// Tool names match the ones offered to the chat assistant so clients
// see a single vocabulary regardless of transport.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        services.ToolSearchDocuments,
		Description: "Search arXiv for papers on a topic, download them and add them to the local index",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        services.ToolSummarizeDocument,
		Description: "Summarize the locally cached paper most relevant to a query",
	}, s.handleSummarize)
}

// handleSearch handles the search-documents tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	summaries, err := s.ports.Librarian.SearchAndCache(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Papers: make([]PaperOutput, len(summaries)),
		Count:  len(summaries),
	}

	for i := range summaries {
		output.Papers[i] = PaperOutput{
			Title:    summaries[i].Title,
			Abstract: summaries[i].Abstract,
			URL:      summaries[i].URL,
		}
	}

	return nil, output, nil
}

// handleSummarize handles the summarize-document tool invocation.
func (s *Server) handleSummarize(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummarizeInput,
) (*mcp.CallToolResult, SummarizeOutput, error) {
	summary, err := s.ports.Summarizer.Summarize(ctx, input.Query)
	if err != nil {
		return nil, SummarizeOutput{}, err
	}

	return nil, SummarizeOutput{Summary: summary}, nil
}
