// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Scholar. It exposes the paper search and summarization tools to
// MCP-compatible AI assistants.
package mcp

import "errors"

// ErrMissingLibrarian is returned when the librarian service is not provided.
var ErrMissingLibrarian = errors.New("mcp: librarian service is required")

// ErrMissingSummarizer is returned when the summarizer service is not provided.
var ErrMissingSummarizer = errors.New("mcp: summarizer service is required")
