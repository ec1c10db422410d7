package plugin

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/edwin/plugin-edwin/internal/schema"
)

// fakeTool records its executions and returns a canned result.
type fakeTool struct {
	name   string
	result any
	err    error
	panic  bool

	mu    sync.Mutex
	calls []map[string]any
}

func (t *fakeTool) Name() string                { return t.name }
func (t *fakeTool) Description() string         { return "Fake " + t.name + " tool" }
func (t *fakeTool) Parameters() json.RawMessage { return json.RawMessage(`{"type":"object"}`) }

func (t *fakeTool) Execute(_ context.Context, params map[string]any) (any, error) {
	t.mu.Lock()
	t.calls = append(t.calls, params)
	t.mu.Unlock()
	if t.panic {
		panic("tool exploded")
	}
	return t.result, t.err
}

func (t *fakeTool) executions() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.calls)
}

// fakeClient serves a fixed tool list and portfolio.
type fakeClient struct {
	tools        []schema.Tool
	toolsErr     error
	portfolio    string
	portfolioErr error
	panic        bool
}

func (c *fakeClient) Tools(context.Context) ([]schema.Tool, error) { return c.tools, c.toolsErr }

func (c *fakeClient) Portfolio(context.Context) (string, error) {
	if c.panic {
		panic("portfolio exploded")
	}
	return c.portfolio, c.portfolioErr
}

// fakeRuntime records which runtime services a handler used.
type fakeRuntime struct {
	params    map[string]any
	paramsErr error
	reply     string
	replyErr  error
	stateErr  error

	composed int
	updated  int
	contexts []string
	requests []schema.ObjectRequest
}

func (r *fakeRuntime) Character() schema.Character { return schema.Character{Name: "Edwin"} }

func (r *fakeRuntime) ComposeState(_ context.Context, msg schema.Memory) (schema.State, error) {
	r.composed++
	if r.stateErr != nil {
		return nil, r.stateErr
	}
	return schema.State{"recentMessages": msg.Content.Text}, nil
}

func (r *fakeRuntime) UpdateRecentMessageState(_ context.Context, state schema.State) (schema.State, error) {
	r.updated++
	if r.stateErr != nil {
		return nil, r.stateErr
	}
	return state.Clone(), nil
}

func (r *fakeRuntime) ComposeContext(state schema.State, template string) string {
	out := template
	for k, v := range state {
		if s, ok := v.(string); ok {
			out = strings.ReplaceAll(out, "{{"+k+"}}", s)
		}
	}
	r.contexts = append(r.contexts, out)
	return out
}

func (r *fakeRuntime) GenerateObject(_ context.Context, req schema.ObjectRequest) (map[string]any, error) {
	r.requests = append(r.requests, req)
	return r.params, r.paramsErr
}

func (r *fakeRuntime) GenerateText(context.Context, string, schema.ModelClass) (string, error) {
	return r.reply, r.replyErr
}

// recorder collects callback responses.
type recorder struct {
	responses []schema.Response
}

func (r *recorder) callback(resp schema.Response) { r.responses = append(r.responses, resp) }

var errInsufficientFunds = errors.New("insufficient funds")
