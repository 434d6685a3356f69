package model

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation entry.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
