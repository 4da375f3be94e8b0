package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// checkText trims value, then records a failure on v when it is required and
// blank or longer than maxLen runes. It returns the trimmed value.
func checkText(v *ValidationErrors, field, value string, required bool, maxLen int) string {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			v.Add(field, "this field is required")
		}
		return value
	}
	if maxLen > 0 && utf8.RuneCountInString(value) > maxLen {
		v.Add(field, fmt.Sprintf("must be at most %d characters", maxLen))
	}
	return value
}

// NormalizeIDs drops duplicate ids while keeping order. Non-positive ids
// are kept so validation can reject them.
func NormalizeIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
