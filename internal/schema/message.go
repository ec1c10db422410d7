package schema

// Message is one entry of a chat request sent to an LLM.
//
// Role is one of: "system", "user", "assistant".
type Message struct {
	Role    string
	Content string
}

func NewSystemMessage(content string) Message {
	return Message{Role: "system", Content: content}
}

func NewUserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

func NewAssistantMessage(content string) Message {
	return Message{Role: "assistant", Content: content}
}
