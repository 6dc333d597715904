package chart

import (
	"encoding/json"
	"strings"
)

// Extract looks for the first chart payload embedded anywhere in text.
// On success it returns the chart and the text to show beside it: the
// payload's comment, or DefaultComment. Any malformed or partial payload
// is treated as plain text and reported as not found.
func Extract(text string) (*Spec, string, bool) {
	var (
		found   *Spec
		comment string
	)
	scanObjects(text, func(raw json.RawMessage) bool {
		spec, c, err := parse(raw)
		if err != nil {
			return false
		}
		found, comment = spec, c
		return true
	})
	if found == nil {
		return nil, "", false
	}
	if comment == "" {
		comment = DefaultComment
	}
	return found, comment, true
}

// scanObjects tries every '{' in text, in order, as the start of one JSON
// value and hands each complete object to fn until fn returns true.
// Unlike a greedy first-brace-to-last-brace match, trailing prose or a
// second object after the payload does not break decoding.
func scanObjects(text string, fn func(raw json.RawMessage) bool) {
	for i := 0; i < len(text); {
		j := strings.IndexByte(text[i:], '{')
		if j < 0 {
			return
		}
		start := i + j

		dec := json.NewDecoder(strings.NewReader(text[start:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err == nil && fn(raw) {
			return
		}
		i = start + 1
	}
}
