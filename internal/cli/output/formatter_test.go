package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestWrite_TextPrefersChatText(t *testing.T) {
	var buf bytes.Buffer
	v := map[string]any{"message_content": "💼 早上好\n\n🌤️ 晴", "preview_mode": true}
	if err := Write(&buf, FormatText, v); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "💼 早上好\n\n🌤️ 晴\n" {
		t.Fatalf("out=%q", buf.String())
	}
}

func TestWrite_TextFlatMap(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatText, map[string]any{"skipped": true, "reason": "weekend"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "reason: weekend\nskipped: true\n" {
		t.Fatalf("out=%q", buf.String())
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, map[string]any{"a": []any{1}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "\"a\": [\n") {
		t.Fatalf("out=%q", buf.String())
	}
}
