// Package domain defines the core business entities for Scholar.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Message / Transcript: The conversation state driving tool dispatch
//   - DocumentRecord: A cached paper with its title embedding
//   - Chunk / ChunkSummary: Units of the map-reduce summarization pipeline
//   - ToolCall / ToolCallRequest: Model-issued tool invocations
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
