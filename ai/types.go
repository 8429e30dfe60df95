package ai

// Role identifies the author of a chat message.
type Role string

const (
	// RoleSystem carries the system instructions.
	RoleSystem Role = "system"
	// RoleUser carries end-user content.
	RoleUser Role = "user"
	// RoleAssistant carries model-generated content.
	RoleAssistant Role = "assistant"
)

// Message is a single chat message.
type Message struct {
	Role    Role
	Content string
}

// ModelRequest is one chat model invocation.
type ModelRequest struct {
	Messages []Message

	// Temperature controls sampling randomness. Zero means provider default.
	Temperature float64

	// MaxTokens caps the completion length. Zero means provider default.
	MaxTokens int
}

// ModelResponse is the model's reply plus token accounting.
type ModelResponse struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
}

// UserContent concatenates all user-role message content in order.
// Guardrail scans run over this combined text.
func (r *ModelRequest) UserContent() string {
	var out string
	for _, m := range r.Messages {
		if m.Role != RoleUser {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += m.Content
	}
	return out
}
