// Package schema contains the contracts shared between the agent host and the
// plugins it loads. Concrete implementations live in their own packages; this
// package is the single source of truth for every interface definition.
package schema

import (
	"context"
	"encoding/json"
)

// Tool is one operation exposed by a wrapped SDK (supply, withdraw, stake...).
// Result shapes are tool-specific, so Execute returns an opaque value that
// callers only serialize or pass through.
type Tool interface {
	Name() string
	Description() string
	// Parameters returns the JSON Schema (as raw JSON bytes) for this tool's parameters.
	Parameters() json.RawMessage
	Execute(ctx context.Context, params map[string]any) (any, error)
}

// PromptTemplater is implemented by tools that ship their own
// parameter-extraction template instead of the schema-derived default.
type PromptTemplater interface {
	PromptTemplate() string
}
