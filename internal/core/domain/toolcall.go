package domain

// ToolCall is a tool invocation as emitted by the completion
// service: a tool name plus the raw, unparsed argument text.
type ToolCall struct {
	// Name is the tool the model asked for.
	Name string

	// Arguments is the model's argument text, expected to be a JSON
	// object. It is parsed (and validated) by the dispatcher, not here.
	Arguments string
}

// ToolCallRequest is a parsed, validated tool invocation ready to be
// executed. Produced once per dispatcher decision and consumed
// immediately by the matching tool.
type ToolCallRequest struct {
	// Name is the tool to invoke.
	Name string

	// Args is the decoded argument object.
	Args map[string]any
}

// ToolSchema declares a tool to the completion service.
type ToolSchema struct {
	// Name is the tool's registered name.
	Name string

	// Description tells the model what the tool does.
	Description string

	// Parameters is a JSON Schema object describing the arguments.
	Parameters map[string]any
}
