package domain

import "time"

// ConversationMessage is one displayed turn of the assistant conversation.
type ConversationMessage struct {
	ID          string
	Role        Role
	Text        string
	Options     []string
	Suggestions []string
	Error       string
	CreatedAt   time.Time
}

func (m ConversationMessage) IsUser() bool {
	return m.Role == RoleUser
}

// HasChoices reports whether the message offers options or suggestions.
func (m ConversationMessage) HasChoices() bool {
	return len(m.Options) > 0 || len(m.Suggestions) > 0
}
