package domain

import "fmt"

// Role tags a conversation turn. Error turns are local artifacts: they are
// rendered to the user but never sent back upstream as dialogue context.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleError     Role = "error"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleError:
		return true
	}
	return false
}

// Dialogue reports whether turns with this role count as prior dialogue
// context for the completion call.
func (r Role) Dialogue() bool {
	return r == RoleUser || r == RoleAssistant
}

// ParseRole validates a free-form role string at the store boundary.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
	}
	return r, nil
}

// Turn is one message unit in the conversation. Turns are append-only and
// never mutated after creation; order equals chronological send order.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// UserTurn creates a turn for a message the user sent.
func UserTurn(text string) Turn {
	return Turn{Role: RoleUser, Text: text}
}

// AssistantTurn creates a turn for a successful model reply.
func AssistantTurn(text string) Turn {
	return Turn{Role: RoleAssistant, Text: text}
}

// ErrorTurn creates a turn for a failed completion or upload.
func ErrorTurn(text string) Turn {
	return Turn{Role: RoleError, Text: text}
}
