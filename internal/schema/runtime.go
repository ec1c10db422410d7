package schema

import (
	"context"
	"encoding/json"
)

// ModelClass selects which configured model serves a generation request.
type ModelClass string

const (
	ModelSmall  ModelClass = "small"
	ModelMedium ModelClass = "medium"
	ModelLarge  ModelClass = "large"
)

// ObjectRequest asks the runtime for a structured object.
type ObjectRequest struct {
	Context    string
	ModelClass ModelClass
	// Schema is the JSON Schema the object should satisfy; may be nil.
	Schema json.RawMessage
}

// Runtime is the slice of the agent host that plugins depend on.
type Runtime interface {
	Character() Character
	ComposeState(ctx context.Context, msg Memory) (State, error)
	UpdateRecentMessageState(ctx context.Context, state State) (State, error)
	ComposeContext(state State, template string) string
	// GenerateObject returns nil (and no error) when the model produced nothing usable.
	GenerateObject(ctx context.Context, req ObjectRequest) (map[string]any, error)
	GenerateText(ctx context.Context, prompt string, class ModelClass) (string, error)
}
