package models

import "strings"

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// HistoryWindow is the number of most recent turns visible to the condenser
// (three question/answer exchanges).
const HistoryWindow = 6

// ConversationTurn is a single message of a session-scoped chat.
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// RecentTurns returns the last HistoryWindow turns of history.
// The returned slice aliases history and must not be modified.
func RecentTurns(history []ConversationTurn) []ConversationTurn {
	if len(history) <= HistoryWindow {
		return history
	}
	return history[len(history)-HistoryWindow:]
}

// FormatHistory renders turns as "User: ..." / "Assistant: ..." lines.
func FormatHistory(turns []ConversationTurn) string {
	var sb strings.Builder
	for i, t := range turns {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch t.Role {
		case RoleAssistant:
			sb.WriteString("Assistant: ")
		default:
			sb.WriteString("User: ")
		}
		sb.WriteString(t.Content)
	}
	return sb.String()
}
