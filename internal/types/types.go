package types

// GeneratedFile is one file of an exported page project.
type GeneratedFile struct {
	Filename string `json:"filename"`
	Type     string `json:"type"` // e.g., "JSX", "CSS", "JSON"
	Content  string `json:"content"`
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one conversation turn as supplied by the caller. Timestamp is
// in Unix milliseconds.
type Message struct {
	ID        string `json:"id,omitempty"`
	Role      Role   `json:"role" binding:"required,oneof=user assistant"`
	Content   string `json:"content" binding:"required"`
	Timestamp int64  `json:"timestamp,omitempty"`
}
