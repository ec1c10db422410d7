package edwin

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/edwin/plugin-edwin/internal/schema"
)

const parametersPrompt = `You are extracting the parameters for the "%s" tool from a conversation.

Tool description:
%s

Parameter schema (JSON Schema):
%s

Recent messages:
{{recentMessages}}

Respond with a single JSON object holding only the parameters defined in the schema, inside a ` + "```json" + ` code block.
Use null for any value the conversation does not provide.`

// ParametersPrompt builds the parameter-extraction template for tool from its
// schema. The {{recentMessages}} placeholder is left for the host to fill.
func ParametersPrompt(tool schema.Tool) string {
	return fmt.Sprintf(parametersPrompt, tool.Name(), tool.Description(), indentSchema(tool.Parameters()))
}

func indentSchema(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
