package common

import "strings"

// HasAny returns true if s contains any of the substrings, ignoring case.
func HasAny(s string, subs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// Normalize trims surrounding whitespace and lower-cases an answer typed by the user.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsYes reports whether a yes/no answer is affirmative. Only "yes" counts.
func IsYes(answer string) bool {
	return Normalize(answer) == "yes"
}
