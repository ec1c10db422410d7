package schema

// State is the template data the host composes for one interaction.
// Plugins treat it as opaque and only hand it back to the runtime.
type State map[string]any

// Clone returns a shallow copy of s.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
