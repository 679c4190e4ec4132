package console

import (
	"strings"
	"unicode/utf8"
)

// Strength is the analyzer's current view of the scoring result.
type Strength struct {
	Score    int
	Feedback []string
}

var strengthLabels = [...]string{"CRITICAL", "WEAK", "FAIR", "STRONG", "PERFECT"}

// StrengthLabel maps a score to its display label. Anything outside [0,4]
// falls back to CRITICAL.
func StrengthLabel(score int) string {
	if score < 0 || score >= len(strengthLabels) {
		return strengthLabels[0]
	}
	return strengthLabels[score]
}

// IsSecure reports whether the score counts as protected (score >= 3).
func IsSecure(score int) bool {
	return score >= 3
}

// ClampScore clamps a remote score into the [0,4] display range.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 4 {
		return 4
	}
	return score
}

// MaskPassword renders a password as asterisks for log lines; passwords are
// never logged in plaintext.
func MaskPassword(password string) string {
	return strings.Repeat("*", utf8.RuneCountInString(password))
}
