package domain

// Role identifies the author of a conversation message.
type Role string

// Conversation roles. Function is used for tool results fed back
// into the transcript after a tool call.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleFunction  Role = "function"
)

// Message represents a single turn in a conversation transcript.
type Message struct {
	// Role is the author of the message.
	Role Role

	// Content is the message text.
	Content string

	// Name is the tool name for function-role messages, empty otherwise.
	Name string
}

// Transcript is the ordered, append-only history of a conversation.
// It is owned by the call site and passed by reference; transcript
// order is chronological order and is the only order the dispatcher
// ever sees.
type Transcript struct {
	messages []Message
}

// NewTranscript creates a transcript seeded with the given messages.
func NewTranscript(messages ...Message) *Transcript {
	t := &Transcript{}
	t.messages = append(t.messages, messages...)
	return t
}

// Append adds a message to the end of the transcript.
// Existing messages are never modified or removed.
func (t *Transcript) Append(msg Message) {
	t.messages = append(t.messages, msg)
}

// Messages returns a copy of the transcript in chronological order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages in the transcript.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the most recent message and true, or a zero Message
// and false when the transcript is empty.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}
