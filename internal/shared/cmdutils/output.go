package cmdutils

import (
	"fmt"
	"io"
)

const logo = "🪙"

// PrintResponse writes an agent reply with the Edwin banner. Empty text is skipped.
func PrintResponse(w io.Writer, text string) {
	if text == "" {
		return
	}

	fmt.Fprintf(w, "\n%s edwin\n%s\n\n", logo, text)
}
