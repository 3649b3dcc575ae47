package chat

import "regexp"

// namePattern matches self-introductions in the first message, e.g.
// "I'm Rafiq", "my name is Sara", "this is Adam". English letters only;
// the capture stops at the first non-letter.
var namePattern = regexp.MustCompile(`(?i)\b(?:i\s*am|i'm|my\s+name\s+is|this\s+is)\s+([A-Za-z]+)`)

// extractGuestName pulls a name out of a visitor's first message. It returns
// the empty string when nothing matches; that is not an error.
func extractGuestName(text string) string {
	match := namePattern.FindStringSubmatch(text)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}
