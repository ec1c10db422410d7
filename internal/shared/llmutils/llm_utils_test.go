package llmutils

import (
	"testing"

	"github.com/edwin/plugin-edwin/internal/schema"
)

func TestExtractJSONObject(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"amount\": 100}\n```":          `{"amount": 100}`,
		"Sure! {\"a\": {\"b\": 1}} hope that helps": `{"a": {"b": 1}}`,
		"no object here":                             "",
		"":                                           "",
	}
	for in, want := range cases {
		if got := ExtractJSONObject(in); got != want {
			t.Errorf("ExtractJSONObject(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStripThink(t *testing.T) {
	if got := StripThink("<think>plan\nmore</think>Done!"); got != "Done!" {
		t.Errorf("got %q", got)
	}
}

func TestToolHint(t *testing.T) {
	got := ToolHint([]schema.ToolCallRequest{
		{Name: "SUPPLY", Arguments: map[string]any{"asset": "USDC"}},
		{Name: "WITHDRAW"},
	})
	if got != `SUPPLY("USDC"), WITHDRAW` {
		t.Errorf("got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if Truncate("abcdef", 3) != "abc..." || Truncate("ab", 3) != "ab" {
		t.Error("unexpected truncation")
	}
}
