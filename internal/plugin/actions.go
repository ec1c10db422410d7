package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/edwin/plugin-edwin/internal/edwin"
	"github.com/edwin/plugin-edwin/internal/schema"
)

// NoParametersError reports that the model produced no parameter object for a tool.
// Its text is shown to the user verbatim.
type NoParametersError struct {
	Tool string
}

func (e *NoParametersError) Error() string {
	return "No parameters generated for tool " + e.Tool
}

// BuildActions turns every tool the client exposes into an action.
//
// The tool list is read once; tools the SDK adds later are not picked up
// until the plugin is rebuilt.
func BuildActions(ctx context.Context, clients ClientGetter) ([]schema.Action, error) {
	client, err := clients.Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("get edwin client: %w", err)
	}

	tools, err := client.Tools(ctx)
	if err != nil {
		return nil, fmt.Errorf("list edwin tools: %w", err)
	}

	actions := make([]schema.Action, 0, len(tools))
	for _, tool := range tools {
		actions = append(actions, newAction(tool, clients))
	}
	return actions, nil
}

func newAction(tool schema.Tool, clients ClientGetter) schema.Action {
	name := strings.ToUpper(tool.Name())
	h := &toolHandler{action: name, tool: tool, clients: clients}

	return schema.Action{
		Name:        name,
		Description: tool.Description(),
		Similes:     []string{},
		Examples:    [][]schema.ActionExample{},
		Validate: func(context.Context, schema.Runtime, schema.Memory, schema.State) bool {
			return true
		},
		Handler: h.handle,
	}
}

// toolHandler runs one tool on behalf of the host.
type toolHandler struct {
	action  string
	tool    schema.Tool
	clients ClientGetter
}

// handle is the containment point for every failure of the tool pipeline.
// cb is invoked at most once.
func (h *toolHandler) handle(
	ctx context.Context,
	rt schema.Runtime,
	msg schema.Memory,
	state schema.State,
	_ map[string]any,
	cb schema.HandlerCallback,
) bool {
	resp, err := h.safeRun(ctx, rt, msg, state)
	if err != nil {
		return h.fail(err, cb)
	}
	return h.deliver(cb, resp)
}

func (h *toolHandler) safeRun(ctx context.Context, rt schema.Runtime, msg schema.Memory, state schema.State) (resp schema.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h.run(ctx, rt, msg, state)
}

// deliver hands resp to the host. A panicking callback is logged, not retried.
func (h *toolHandler) deliver(cb schema.HandlerCallback, resp schema.Response) (ok bool) {
	if cb == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Edwin action callback panicked", "action", h.action, "panic", r)
			ok = false
		}
	}()
	cb(resp)
	return true
}

func (h *toolHandler) run(ctx context.Context, rt schema.Runtime, msg schema.Memory, state schema.State) (schema.Response, error) {
	if _, err := h.clients.Client(ctx); err != nil {
		return schema.Response{}, err
	}

	var err error
	if state == nil {
		state, err = rt.ComposeState(ctx, msg)
	} else {
		state, err = rt.UpdateRecentMessageState(ctx, state)
	}
	if err != nil {
		return schema.Response{}, fmt.Errorf("compose state: %w", err)
	}

	params, err := rt.GenerateObject(ctx, schema.ObjectRequest{
		Context:    rt.ComposeContext(state, parametersTemplate(h.tool)),
		ModelClass: schema.ModelLarge,
		Schema:     h.tool.Parameters(),
	})
	if err != nil {
		return schema.Response{}, err
	}
	if len(params) == 0 {
		return schema.Response{}, &NoParametersError{Tool: h.tool.Name()}
	}

	slog.Info("Executing edwin tool", "tool", h.tool.Name())
	result, err := h.tool.Execute(ctx, params)
	if err != nil {
		return schema.Response{}, err
	}

	reply, err := rt.GenerateText(ctx, rt.ComposeContext(state, responseTemplate(h.tool.Name(), result)), schema.ModelLarge)
	if err != nil {
		return schema.Response{}, err
	}

	return schema.Response{Text: reply, Content: result}, nil
}

func (h *toolHandler) fail(err error, cb schema.HandlerCallback) bool {
	msg := err.Error()
	slog.Error("Edwin action failed", "action", h.action, "err", err)
	h.deliver(cb, schema.Response{
		Text:    fmt.Sprintf("Error executing action %s: %s", h.action, msg),
		Content: map[string]any{"error": msg},
	})
	return false
}

func parametersTemplate(tool schema.Tool) string {
	if t, ok := tool.(schema.PromptTemplater); ok {
		if tmpl := t.PromptTemplate(); tmpl != "" {
			return tmpl
		}
	}
	return edwin.ParametersPrompt(tool)
}
