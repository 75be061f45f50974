package models

import (
	"encoding/json"
	"errors"
	"strings"
)

// Op is a single Quill Delta operation. Insert is either a string (text) or a
// map (embed, e.g. {"image": url}). Attributes carry inline or line-level
// formatting.
type Op struct {
	Insert     any            `json:"insert"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Delta is an ordered sequence of insert operations, the storage form of a
// post's rich-text content.
type Delta struct {
	Ops []Op `json:"ops"`
}

var errInvalidDelta = errors.New("invalid Delta format")

// ParseDelta decodes a serialized Delta document. A payload that is not JSON,
// or that lacks an ops array, is invalid.
func ParseDelta(content string) (*Delta, error) {
	var raw struct {
		Ops json.RawMessage `json:"ops"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, errInvalidDelta
	}
	if len(raw.Ops) == 0 {
		return nil, errInvalidDelta
	}

	var ops []Op
	if err := json.Unmarshal(raw.Ops, &ops); err != nil {
		return nil, errInvalidDelta
	}
	// "ops": null decodes without error but is not an ops array.
	if ops == nil {
		return nil, errInvalidDelta
	}

	return &Delta{Ops: ops}, nil
}

// IsEmpty reports whether the document has no meaningful content: no embeds
// and no insert with a non-whitespace character. Quill represents an empty
// editor as a single {"insert": "\n"} op.
func (d *Delta) IsEmpty() bool {
	for _, op := range d.Ops {
		switch v := op.Insert.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return false
			}
		case map[string]any:
			if len(v) > 0 {
				return false
			}
		}
	}
	return true
}

// Serialize renders the document back to its storage form.
func (d *Delta) Serialize() (string, error) {
	out, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
