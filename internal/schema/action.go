package schema

import "context"

// Response is what a handler reports back to the conversation: the text shown
// to the user and the raw payload that produced it.
type Response struct {
	Text    string `json:"text"`
	Content any    `json:"content,omitempty"`
}

// HandlerCallback receives the outcome of an action. Handlers call it at most
// once per invocation.
type HandlerCallback func(resp Response)

// ValidateFunc decides whether an action is eligible for a message.
type ValidateFunc func(ctx context.Context, rt Runtime, msg Memory, state State) bool

// HandlerFunc runs an action. It reports success as a boolean and must never
// panic or return an error to the host; failures go through the callback.
type HandlerFunc func(
	ctx context.Context,
	rt Runtime,
	msg Memory,
	state State,
	opts map[string]any,
	cb HandlerCallback,
) bool

// ActionExample is one turn of a sample conversation shown to the model.
type ActionExample struct {
	User    string  `json:"user" yaml:"user"`
	Content Content `json:"content" yaml:"content"`
}

// Action describes a callable capability to the host.
type Action struct {
	Name        string
	Description string
	Similes     []string
	Examples    [][]ActionExample
	Validate    ValidateFunc
	Handler     HandlerFunc
}

// Provider is a read-only context source queried before the host replies.
// A false second return value means "nothing to contribute".
type Provider interface {
	Get(ctx context.Context, rt Runtime, msg Memory) (string, bool)
}

// Plugin bundles the actions and providers a host should register.
type Plugin struct {
	Name        string
	Description string
	Actions     []Action
	Providers   []Provider
}
