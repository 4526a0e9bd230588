package domain

// ConversationStore keeps one ordered message history per user.
type ConversationStore interface {
	Reset(userID int64, systemPrompt string)
	Append(userID int64, msg Message)
	Messages(userID int64) []Message
	Exists(userID int64) bool
}
