// Package output renders botctl results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// textKeys are the payload fields that carry chat-ready text, in the order
// they are tried.
var textKeys = []string{"message_content", "weather", "current_weather", "forecast", "fortune_text", "constellation_text", "weather_info", "fortune_info", "lunch_recommendation", "sent_message"}

// Write prints v. In text mode a payload carrying chat text prints just that
// text; anything else falls back to indented JSON.
func Write(w io.Writer, format Format, v any) error {
	switch format {
	case FormatText:
		if s, ok := chatText(v); ok {
			_, err := fmt.Fprintln(w, s)
			return err
		}
		if m, ok := v.(map[string]any); ok && isFlat(m) {
			return writeFlat(w, m)
		}
		fallthrough
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
}

func chatText(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	for _, k := range textKeys {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}

func isFlat(m map[string]any) bool {
	for _, v := range m {
		switch v.(type) {
		case map[string]any, []any:
			return false
		}
	}
	return true
}

func writeFlat(w io.Writer, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s: %v\n", k, m[k]); err != nil {
			return err
		}
	}
	return nil
}
