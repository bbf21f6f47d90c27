package domain

import "time"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one exchanged message in the conversation history.
type Message struct {
	ID         string    `json:"id"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	QuestionID string    `json:"question_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
