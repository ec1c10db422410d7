package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/edwin/plugin-edwin/internal/schema"
	"github.com/edwin/plugin-edwin/internal/shared/llmutils"
)

func (r *Runtime) conversation(prompt string) schema.Messages {
	msgs := schema.NewMessages()
	if r.character.System != "" {
		msgs.AddSystem(r.character.System)
	}
	msgs.AddUser(prompt)
	return msgs
}

// GenerateText runs a single-turn completion of prompt.
func (r *Runtime) GenerateText(ctx context.Context, prompt string, class schema.ModelClass) (string, error) {
	resp, err := r.provider.Chat(ctx, r.conversation(prompt), nil, r.settings.chatOptions(class))
	if err != nil {
		return "", fmt.Errorf("generate text: %w", err)
	}
	return strings.TrimSpace(llmutils.StripThink(resp.Text())), nil
}

// GenerateObject asks the model for a JSON object. It returns nil when the
// reply contains no object.
func (r *Runtime) GenerateObject(ctx context.Context, req schema.ObjectRequest) (map[string]any, error) {
	opts := r.settings.chatOptions(req.ModelClass)
	opts.JSONMode = true

	resp, err := r.provider.Chat(ctx, r.conversation(req.Context), nil, opts)
	if err != nil {
		return nil, fmt.Errorf("generate object: %w", err)
	}

	raw := llmutils.ExtractJSONObject(llmutils.StripThink(resp.Text()))
	if raw == "" {
		return nil, nil
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, fmt.Errorf("parse generated object: %w", err)
	}
	return obj, nil
}
