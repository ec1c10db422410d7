package agent

import (
	"fmt"
	"regexp"

	"github.com/edwin/plugin-edwin/internal/schema"
)

var rePlaceholder = regexp.MustCompile(`\{\{(\w+)\}\}`)

// ComposeContext renders template, replacing {{key}} with the state value.
// Unknown keys render empty.
func (r *Runtime) ComposeContext(state schema.State, template string) string {
	return rePlaceholder.ReplaceAllStringFunc(template, func(m string) string {
		v, ok := state[m[2:len(m)-2]]
		if !ok || v == nil {
			return ""
		}
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	})
}
