package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrEmptyIndex indicates the retrieval index has no records.
	// Ranking requires at least one successful search-and-cache first.
	ErrEmptyIndex = errors.New("retrieval index is empty")

	// ErrRetrievalUnavailable indicates the embedding service stayed
	// unreachable after bounded retries. It is surfaced to the caller,
	// never silently defaulted.
	ErrRetrievalUnavailable = errors.New("embedding service unavailable")

	// ErrCompletionUnavailable indicates the completion service stayed
	// unreachable after bounded retries.
	ErrCompletionUnavailable = errors.New("completion service unavailable")

	// ErrMalformedToolArguments indicates the model produced tool
	// arguments that are not valid JSON. This is a generation defect,
	// not a transient fault: it is reported, never retried.
	ErrMalformedToolArguments = errors.New("malformed tool arguments")

	// ErrUnknownTool indicates the model named a tool that is not
	// registered. Defensive: the schema presented to the model is fixed,
	// so this should not occur.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrNoResults indicates the document provider returned no hits
	// for a query.
	ErrNoResults = errors.New("no results")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
