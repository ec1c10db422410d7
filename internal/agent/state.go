package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/edwin/plugin-edwin/internal/schema"
)

// State keys filled by ComposeState.
const (
	keyAgentName      = "agentName"
	keyBio            = "bio"
	keyLore           = "lore"
	keyKnowledge      = "knowledge"
	keyActionExamples = "actionExamples"
	keyProviders      = "providers"
	keyActions        = "actions"
	keyActionNames    = "actionNames"
	keyAttachments    = "attachments"
	keyRecentMessages = "recentMessages"
	keyMessageText    = "messageText"
	keyRoomID         = "roomId"
)

var errNoRoom = errors.New("state has no roomId")

// ComposeState builds the template state for msg from the character, the
// registered actions and providers, and the room's recent memories.
func (r *Runtime) ComposeState(ctx context.Context, msg schema.Memory) (schema.State, error) {
	recent := r.sessions.GetOrCreate(msg.RoomID).Recent(r.settings.MemoryWindow)
	actions := r.Actions()

	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.Name
	}

	return schema.State{
		keyAgentName:      r.character.Name,
		keyBio:            strings.Join(r.character.Bio, "\n"),
		keyLore:           strings.Join(r.character.Lore, "\n"),
		keyKnowledge:      strings.Join(r.character.Knowledge, "\n"),
		keyActionExamples: formatExamples(r.character.MessageExamples),
		keyProviders:      r.runProviders(ctx, msg),
		keyActions:        formatActions(actions),
		keyActionNames:    strings.Join(names, ", "),
		keyAttachments:    formatAttachments(recent),
		keyRecentMessages: formatMessages(recent),
		keyMessageText:    msg.Content.Text,
		keyRoomID:         msg.RoomID,
	}, nil
}

// UpdateRecentMessageState returns a copy of state with the conversation
// fields refreshed from the session.
func (r *Runtime) UpdateRecentMessageState(_ context.Context, state schema.State) (schema.State, error) {
	roomID, _ := state[keyRoomID].(string)
	if roomID == "" {
		return nil, errNoRoom
	}

	recent := r.sessions.GetOrCreate(roomID).Recent(r.settings.MemoryWindow)
	out := state.Clone()
	out[keyRecentMessages] = formatMessages(recent)
	out[keyAttachments] = formatAttachments(recent)
	return out, nil
}

// runProviders joins the output of every provider that contributed.
func (r *Runtime) runProviders(ctx context.Context, msg schema.Memory) string {
	var parts []string
	for _, p := range r.registeredProviders() {
		if text, ok := p.Get(ctx, r, msg); ok && text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "# Additional Information About " + r.character.Name + " and The World\n" + strings.Join(parts, "\n\n")
}

func formatMessages(mems []schema.Memory) string {
	lines := make([]string, 0, len(mems))
	for _, m := range mems {
		line := m.UserID + ": " + m.Content.Text
		if m.Content.Action != "" {
			line += " (" + m.Content.Action + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func formatAttachments(mems []schema.Memory) string {
	var parts []string
	for _, m := range mems {
		for _, a := range m.Content.Attachments {
			parts = append(parts, fmt.Sprintf("ID: %s\nName: %s\nURL: %s\nType: %s\nDescription: %s\nText: %s",
				a.ID, a.Title, a.URL, a.Source, a.Description, a.Text))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "# Attachments\n" + strings.Join(parts, "\n\n")
}

func formatActions(actions []schema.Action) string {
	lines := make([]string, 0, len(actions))
	for _, a := range actions {
		lines = append(lines, a.Name+": "+a.Description)
	}
	return strings.Join(lines, "\n")
}

func formatExamples(examples [][]schema.ActionExample) string {
	convs := make([]string, 0, len(examples))
	for _, conv := range examples {
		var lines []string
		for _, turn := range conv {
			line := turn.User + ": " + turn.Content.Text
			if turn.Content.Action != "" {
				line += " (" + turn.Content.Action + ")"
			}
			lines = append(lines, line)
		}
		convs = append(convs, strings.Join(lines, "\n"))
	}
	return strings.Join(convs, "\n\n")
}
