package plugin

import (
	"encoding/json"
	"fmt"
)

// responsePrompt is filled by the runtime's ComposeContext; the two %s verbs
// are resolved first with the tool name and the JSON result.
const responsePrompt = `
# Action Examples
{{actionExamples}}

# Knowledge
{{knowledge}}

# Task: Generate dialog and actions for the character {{agentName}}.
About {{agentName}}:
{{bio}}
{{lore}}

{{providers}}

{{attachments}}

# Capabilities
Note that {{agentName}} is capable of reading/seeing/hearing various forms of media, including images, videos, audio, plaintext and PDFs. Recent attachments have been included above under the "Attachments" section.

The action "%s" was executed successfully.
Here is the result:
%s

{{actions}}

Respond to the message knowing that the action was successful and these were the previous messages:
{{recentMessages}}
`

func responseTemplate(tool string, result any) string {
	return fmt.Sprintf(responsePrompt, tool, encodeResult(result))
}

// encodeResult serializes a tool result for the prompt. Values that cannot be
// marshaled fall back to their fmt representation.
func encodeResult(result any) string {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprintf("%v", result)
	}
	return string(data)
}
