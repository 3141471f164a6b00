package util

import "strings"

// StripCodeFences removes markdown code-fence wrapping that models sometimes add
// around JSON output, even when a JSON MIME type was requested.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
