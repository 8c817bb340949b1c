package types

// Role tags a conversation history entry.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged utterance in the conversation history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// EntryKind tags a UI transcript entry.
type EntryKind string

const (
	EntryUser  EntryKind = "user"
	EntryAI    EntryKind = "ai"
	EntryError EntryKind = "error"
)

// TranscriptEntry is one line shown to the user. The transcript is separate
// from the history sent to the model.
type TranscriptEntry struct {
	Kind EntryKind `json:"type"`
	Text string    `json:"text"`
}
