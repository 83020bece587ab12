package utils

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ParseValue converts a command-line argument into a JSON value.
// Valid JSON documents ("42", "true", "{\"a\":1}", "\"quoted\"") are kept as is;
// anything else is encoded as a JSON string.
func ParseValue(s string) json.RawMessage {
	trimmed := strings.TrimSpace(s)
	if trimmed != "" && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}

	b, _ := json.Marshal(s)
	return b
}

// Indent pretty-prints a JSON document for terminal output.
// Invalid documents are returned unchanged.
func Indent(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// ToString renders a JSON value for plain output: strings are unquoted, other
// values are returned in their compact JSON form.
func ToString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
