package tools

import (
	"regexp"
	"strings"
	"time"

	"github.com/jinzhu/now"

	"task-board-system.com/task-board-system/internal/constants"
)

var separators = regexp.MustCompile(`[\s\-]+`)

// dateParser accepts the loose date forms people type. Layouts with a
// textual month are tried after the numeric ones jinzhu/now knows. Only
// layouts naming a full calendar date are kept, so "3" or "10:30" is not
// read as today.
var dateParser = &now.Config{
	TimeLocation: time.UTC,
	TimeFormats: dateLayouts(append(append([]string{}, now.TimeFormats...),
		"2006/01/02",
		"2006/1/2",
		"01/02/2006",
		"1/2/2006",
		"Jan 2, 2006",
		"January 2, 2006",
		"Jan 2 2006",
		"January 2 2006",
		"2 Jan 2006",
		"2 January 2006",
	)),
}

// dateLayouts keeps the layouts whose output changes with the year, the
// month and the day.
func dateLayouts(layouts []string) []string {
	ref := time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC)
	shifted := []time.Time{ref.AddDate(1, 0, 0), ref.AddDate(0, 1, 0), ref.AddDate(0, 0, 1)}

	out := make([]string, 0, len(layouts))
	for _, layout := range layouts {
		full := true
		for _, other := range shifted {
			if ref.Format(layout) == other.Format(layout) {
				full = false
				break
			}
		}
		if full {
			out = append(out, layout)
		}
	}
	return out
}

// NormalizeStatus maps free-form status text onto the vocabulary, so
// "In-Progress" and "in progress" both become in_progress.
func NormalizeStatus(s string) (constants.TaskStatus, bool) {
	status := constants.TaskStatus(canonical(s))
	return status, status.IsValid()
}

func NormalizePriority(s string) (constants.TaskPriority, bool) {
	priority := constants.TaskPriority(canonical(s))
	return priority, priority.IsValid()
}

// NormalizeDate reduces a date or timestamp to YYYY-MM-DD. Timestamps keep
// the calendar date they were written in.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	for _, layout := range []string{constants.DateLayout, time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(constants.DateLayout), true
		}
	}

	t, err := dateParser.Parse(s)
	if err != nil {
		return "", false
	}
	return t.Format(constants.DateLayout), true
}

func canonical(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return separators.ReplaceAllString(s, "_")
}
