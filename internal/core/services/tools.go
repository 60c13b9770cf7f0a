package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/scholar-cli/internal/core/domain"
	"github.com/custodia-labs/scholar-cli/internal/core/ports/driving"
)

// Tool names as presented to the model. The set is fixed: exactly
// these two tools are offered on every turn.
const (
	ToolSearchDocuments   = "search-documents"
	ToolSummarizeDocument = "summarize-document"
)

// SystemPrompt seeds every conversation transcript.
const SystemPrompt = `You are a research assistant. Use the search-documents tool to find papers about a topic the user asks about, and the summarize-document tool to read and summarize the most relevant paper. Answer from tool results when you use them.`

// queryParameters is the shared argument schema: both tools take a
// single free-text query.
func queryParameters(description string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": description,
			},
		},
		"required": []string{"query"},
	}
}

// SearchDocumentsTool builds the search tool. The tool's transcript
// result lists the fetched papers; the dispatcher issues a follow-up
// completion to phrase the user-facing answer.
func SearchDocumentsTool(librarian driving.Librarian) Tool {
	return Tool{
		Schema: domain.ToolSchema{
			Name:        ToolSearchDocuments,
			Description: "Search for academic papers about a topic and cache them locally. Returns titles and abstracts.",
			Parameters:  queryParameters("The topic to search papers for"),
		},
		Handle: func(ctx context.Context, req domain.ToolCallRequest) (string, error) {
			query, err := StringArg(req, "query")
			if err != nil {
				return "", err
			}
			summaries, err := librarian.SearchAndCache(ctx, query)
			if err != nil {
				return "", err
			}
			return FormatSummaries(summaries), nil
		},
	}
}

// SummarizeDocumentTool builds the summarize tool. Its result is the
// final answer; the dispatcher returns it without a further
// completion round.
func SummarizeDocumentTool(summarizer driving.Summarizer) Tool {
	return Tool{
		Schema: domain.ToolSchema{
			Name:        ToolSummarizeDocument,
			Description: "Summarize the cached paper most relevant to a query. Use after papers have been searched.",
			Parameters:  queryParameters("The question the summary should answer"),
		},
		Handle: func(ctx context.Context, req domain.ToolCallRequest) (string, error) {
			query, err := StringArg(req, "query")
			if err != nil {
				return "", err
			}
			return summarizer.Summarize(ctx, query)
		},
		ReturnsDirect: true,
	}
}

// FormatSummaries renders search hits as a numbered list for the
// transcript and the console.
func FormatSummaries(summaries []domain.DocumentSummary) string {
	if len(summaries) == 0 {
		return "No papers found."
	}
	var b strings.Builder
	for i, s := range summaries {
		fmt.Fprintf(&b, "%d. %s\n   %s\n", i+1, s.Title, s.URL)
		abstract := strings.TrimSpace(s.Abstract)
		if abstract != "" {
			fmt.Fprintf(&b, "   %s\n", abstract)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
