package core

import (
	"bytes"
	"encoding/json"
	"strings"
)

// The query endpoint has no fixed response schema: it may reply with a
// conversational answer, an error row, or raw query-result rows. Classify
// reduces whatever came back to one displayable string, degrading to the
// serialized payload instead of failing.

type replyKind int

const (
	replyAnswer replyKind = iota
	replyWarning
	replyRaw
)

type reply struct {
	kind replyKind
	text string
}

// Classify interprets a raw query response and returns the bot's display text.
func Classify(raw json.RawMessage) string {
	r := classifyReply(raw)
	if r.kind == replyWarning {
		return "⚠️ " + r.text
	}
	return r.text
}

func classifyReply(raw json.RawMessage) reply {
	value, err := decodePayload(raw)
	if err != nil {
		// Not JSON at all. Show it as-is rather than crash the chat.
		return reply{kind: replyRaw, text: strings.TrimSpace(string(raw))}
	}

	if rows, ok := value.([]interface{}); ok && len(rows) > 0 {
		if first, ok := rows[0].(map[string]interface{}); ok {
			if msg, ok := first["message"].(string); ok {
				return reply{kind: replyAnswer, text: msg}
			}
			if errText, ok := first["error"].(string); ok {
				return reply{kind: replyWarning, text: errText}
			}
		}
	}

	return reply{kind: replyRaw, text: serialize(value, raw)}
}

func decodePayload(raw json.RawMessage) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	// Keep numbers textual so 60 round-trips as 60, not 6e+01.
	dec.UseNumber()
	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	return value, nil
}

func serialize(value interface{}, raw json.RawMessage) string {
	text, err := json.Marshal(value)
	if err != nil {
		return strings.TrimSpace(string(raw))
	}
	return string(text)
}
