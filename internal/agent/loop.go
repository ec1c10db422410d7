package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/edwin/plugin-edwin/internal/schema"
	"github.com/edwin/plugin-edwin/internal/shared/llmutils"
)

const messageHandlerTemplate = `# Action Examples
{{actionExamples}}

# Knowledge
{{knowledge}}

# Task: Generate dialog and actions for the character {{agentName}}.
About {{agentName}}:
{{bio}}
{{lore}}

{{providers}}

{{attachments}}

# Available Actions
{{actions}}

Call one of the available actions ({{actionNames}}) when the last message asks {{agentName}} to perform it.
Otherwise reply to the last message in character with plain text.

Recent messages:
{{recentMessages}}
`

const fallbackReply = "I've completed processing but have no response to give."

// Respond handles one inbound message: it stores msg, lets the model pick an
// action or reply in text, and delivers every reply through cb. Replies are
// stored in the room's session.
func (r *Runtime) Respond(ctx context.Context, msg schema.Memory, cb schema.HandlerCallback) error {
	slog.Info("Processing message",
		"room", msg.RoomID,
		"sender", msg.UserID,
		"content", llmutils.Truncate(msg.Content.Text, 80),
	)

	sess := r.sessions.GetOrCreate(msg.RoomID)
	if reply, ok := r.handleSlashCommand(msg); ok {
		deliver(cb, schema.Response{Text: reply})
		return nil
	}
	sess.Add(msg)

	state, err := r.ComposeState(ctx, msg)
	if err != nil {
		return err
	}

	actions := r.Actions()
	resp, err := r.provider.Chat(ctx,
		r.conversation(r.ComposeContext(state, messageHandlerTemplate)),
		actionDefinitions(actions),
		r.settings.chatOptions(schema.ModelLarge),
	)
	if err != nil {
		return fmt.Errorf("choose action: %w", err)
	}

	record := func(res schema.Response, action string) {
		reply := schema.NewMemory(msg.RoomID, r.character.Name, res.Text)
		reply.Content.Action = action
		sess.Add(reply)
		deliver(cb, res)
	}

	if r.dispatch(ctx, resp.ToolCalls, msg, state, record) {
		return r.sessions.Save(sess)
	}

	text := strings.TrimSpace(llmutils.StripThink(resp.Text()))
	record(schema.Response{Text: llmutils.StringOrDefault(text, fallbackReply)}, "")
	return r.sessions.Save(sess)
}

// dispatch runs the first requested action that exists and validates.
// It reports whether an action ran.
func (r *Runtime) dispatch(
	ctx context.Context,
	calls []schema.ToolCallRequest,
	msg schema.Memory,
	state schema.State,
	record func(schema.Response, string),
) bool {
	for _, tc := range calls {
		action, ok := r.findAction(tc.Name)
		if !ok {
			slog.Warn("Model requested unknown action", "action", tc.Name)
			continue
		}
		if action.Validate != nil && !action.Validate(ctx, r, msg, state) {
			slog.Info("Action rejected by validator", "action", action.Name)
			continue
		}

		slog.Info("Action call", "hint", llmutils.ToolHint([]schema.ToolCallRequest{tc}))
		ok = action.Handler(ctx, r, msg, state, tc.Arguments, func(res schema.Response) {
			record(res, action.Name)
		})
		slog.Info("Action finished", "action", action.Name, "ok", ok)
		return true
	}
	return false
}

// ProcessDirect handles a message outside any chat transport (CLI, cron)
// and returns the joined reply text.
func (r *Runtime) ProcessDirect(ctx context.Context, roomID, userID, text string) (string, error) {
	var replies []string
	err := r.Respond(ctx, schema.NewMemory(roomID, userID, text), func(res schema.Response) {
		if res.Text != "" {
			replies = append(replies, res.Text)
		}
	})
	if err != nil {
		return "", err
	}
	return strings.Join(replies, "\n\n"), nil
}

// handleSlashCommand answers /new and /help without calling the model.
func (r *Runtime) handleSlashCommand(msg schema.Memory) (string, bool) {
	switch strings.TrimSpace(strings.ToLower(msg.Content.Text)) {
	case "/new":
		sess := r.sessions.GetOrCreate(msg.RoomID)
		sess.Clear()
		if err := r.sessions.Save(sess); err != nil {
			slog.Warn("failed to save cleared session", "room", msg.RoomID, "err", err)
		}
		return "New session started.", true
	case "/help":
		return r.character.Name + " commands:\n/new: start a new conversation\n/help: show available commands", true
	}
	return "", false
}

func deliver(cb schema.HandlerCallback, res schema.Response) {
	if cb != nil {
		cb(res)
	}
}

// actionDefinitions returns the actions in OpenAI function-calling format.
// Parameters are left open: each handler extracts its own.
func actionDefinitions(actions []schema.Action) []map[string]any {
	list := make([]map[string]any, 0, len(actions))
	for _, a := range actions {
		list = append(list, map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        a.Name,
				"description": a.Description,
				"parameters":  map[string]any{"type": "object", "properties": map[string]any{}},
			},
		})
	}
	return list
}
