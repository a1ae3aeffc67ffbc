package utils

import "strings"

// TruncateForLog flattens s onto one line and cuts it to limit runes.
// Resume and prompt text is multi-line, which breaks console log output.
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	flat := strings.Join(strings.Fields(s), " ")
	runes := []rune(flat)
	if len(runes) <= limit {
		return flat
	}

	return string(runes[:limit]) + "..."
}
