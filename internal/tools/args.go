package tools

import (
	"bytes"
	"encoding/json"
	"strings"

	apperrors "task-board-system.com/task-board-system/internal/errors"
)

type args map[string]json.RawMessage

func parseArgs(input json.RawMessage) (args, error) {
	trimmed := bytes.TrimSpace(input)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return args{}, nil
	}

	var a args
	if err := json.Unmarshal(trimmed, &a); err != nil {
		return nil, apperrors.ErrInvalidJSON
	}
	if a == nil {
		a = args{}
	}
	return a, nil
}

// field is one argument as the assistant sent it. Non-string scalars keep
// their JSON text so an id sent as a number still resolves.
type field struct {
	present bool
	null    bool
	text    string
}

func (a args) field(name string) field {
	raw, ok := a[name]
	if !ok {
		return field{}
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return field{present: true, null: true}
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return field{present: true, text: s}
		}
	}
	return field{present: true, text: string(raw)}
}

func (a args) text(name string) string {
	return strings.TrimSpace(a.field(name).text)
}

// given reports a present, non-blank value.
func (f field) given() bool {
	return f.present && !f.null && strings.TrimSpace(f.text) != ""
}

// clears reports one of the sentinels that empty an optional field.
func (f field) clears() bool {
	if !f.present {
		return false
	}
	if f.null {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(f.text)) {
	case "", "null", "none":
		return true
	}
	return false
}

func (f field) value() string {
	return strings.TrimSpace(f.text)
}
