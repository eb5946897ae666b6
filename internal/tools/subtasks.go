package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "task-board-system.com/task-board-system/internal/errors"
	model "task-board-system.com/task-board-system/internal/models"
)

// ParseSubtasks reads the subtasks argument. It arrives either as a list or
// as a string holding the JSON of that list. Items are {title, description}
// objects or bare title strings.
func ParseSubtasks(raw json.RawMessage) ([]model.SubtaskInput, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, apperrors.ErrInvalidSubtasks
		}
		raw = bytes.TrimSpace([]byte(encoded))
	}
	if len(raw) == 0 || raw[0] != '[' {
		return nil, apperrors.ErrInvalidSubtasks
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, apperrors.ErrInvalidSubtasks
	}
	if len(items) == 0 {
		return nil, apperrors.ErrNoSubtasks
	}

	out := make([]model.SubtaskInput, 0, len(items))
	for i, item := range items {
		st, err := parseSubtask(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		out = append(out, st)
	}
	return out, nil
}

func parseSubtask(item json.RawMessage) (model.SubtaskInput, error) {
	item = bytes.TrimSpace(item)
	if len(item) == 0 {
		return model.SubtaskInput{}, apperrors.ErrInvalidSubtasks
	}

	var st model.SubtaskInput
	switch item[0] {
	case '"':
		if err := json.Unmarshal(item, &st.Title); err != nil {
			return st, apperrors.ErrInvalidSubtasks
		}
	case '{':
		var obj struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return st, apperrors.ErrInvalidSubtasks
		}
		if obj.Title != nil {
			st.Title = *obj.Title
		}
		if obj.Description != nil && strings.TrimSpace(*obj.Description) != "" {
			d := strings.TrimSpace(*obj.Description)
			st.Description = &d
		}
	default:
		return st, apperrors.ErrInvalidSubtasks
	}

	st.Title = strings.TrimSpace(st.Title)
	if st.Title == "" {
		return st, apperrors.ErrTitleRequired
	}
	return st, nil
}
