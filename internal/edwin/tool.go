package edwin

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/edwin/plugin-edwin/internal/mcp"
	"github.com/edwin/plugin-edwin/internal/schema"
)

var emptySchema = json.RawMessage(`{"type":"object","properties":{}}`)

// toolServer is the subset of *mcp.Client the SDK needs.
type toolServer interface {
	ListTools(ctx context.Context) ([]mcp.ToolDefinition, error)
	CallTool(ctx context.Context, name string, args map[string]any) (mcp.CallResult, error)
	Close() error
}

// remoteTool wraps a tool served by the Edwin tool server.
type remoteTool struct {
	server toolServer
	def    mcp.ToolDefinition
}

func (t *remoteTool) Name() string        { return t.def.Name }
func (t *remoteTool) Description() string { return t.def.Description }

func (t *remoteTool) Parameters() json.RawMessage {
	if len(t.def.InputSchema) == 0 {
		return emptySchema
	}
	return t.def.InputSchema
}

func (t *remoteTool) Execute(ctx context.Context, params map[string]any) (any, error) {
	res, err := t.server.CallTool(ctx, t.def.Name, params)
	if err != nil {
		return nil, err
	}
	return decodeResult(res)
}

// decodeResult returns the text decoded as JSON when possible, else the raw text.
func decodeResult(res mcp.CallResult) (any, error) {
	text := res.Text()
	if res.IsError {
		if text == "" {
			text = "tool reported an error"
		}
		return nil, errors.New(text)
	}

	var v any
	if err := json.Unmarshal([]byte(text), &v); err == nil {
		return v, nil
	}
	return text, nil
}

var _ schema.Tool = (*remoteTool)(nil)
