// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - CompletionService: Chat completions with optional tool calling
//   - EmbeddingService: Text to fixed-dimension vector
//   - PaperProvider: Remote paper search and source-file download
//   - IndexStore: Append-only retrieval index persistence
//   - TextExtractor: Source file to plain text
//   - Tokenizer: Model token encode/decode
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
