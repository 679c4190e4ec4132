package scoring

import (
	"fmt"
	"strings"
	"unicode"
)

// MinPasswordLength is the length parameter threshold.
const MinPasswordLength = 12

const specialCharacters = `!@#$%^&*(),.?":{}|<>`

// Result is the outcome of one strength check.
type Result struct {
	Strength string
	Score    int
	Message  string
}

// strengthNames maps the number of parameters met to a display name.
var strengthNames = map[int]string{
	0: "Critical",
	1: "Critical",
	2: "Weak",
	3: "Fair",
	4: "Good",
	5: "Strong",
	6: "Perfect",
}

// Checker scores passwords against six parameters: uppercase, lowercase,
// digit, special character, minimum length, and absence from the weak and
// banned wordlists.
type Checker struct {
	weak   *Wordlist
	banned *Wordlist
}

func NewChecker(weak, banned *Wordlist) *Checker {
	return &Checker{weak: weak, banned: banned}
}

// IsWeak reports whether the password appears in the weak wordlist.
func (c *Checker) IsWeak(password string) bool {
	return c.weak.Contains(password)
}

// IsBanned reports whether the password appears in the banned wordlist.
func (c *Checker) IsBanned(password string) bool {
	return c.banned.Contains(password)
}

func containsFunc(s string, fn func(rune) bool) bool {
	return strings.IndexFunc(s, fn) >= 0
}

// Check evaluates the six parameters and maps the count met onto the 0..4
// score range the clients display.
func (c *Checker) Check(password string) Result {
	paramsMet := 0
	var missing []string

	if containsFunc(password, unicode.IsUpper) {
		paramsMet++
	} else {
		missing = append(missing, "uppercase letter")
	}
	if containsFunc(password, unicode.IsLower) {
		paramsMet++
	} else {
		missing = append(missing, "lowercase letter")
	}
	if containsFunc(password, unicode.IsDigit) {
		paramsMet++
	} else {
		missing = append(missing, "number")
	}
	if strings.ContainsAny(password, specialCharacters) {
		paramsMet++
	} else {
		missing = append(missing, "special character")
	}
	if len(password) >= MinPasswordLength {
		paramsMet++
	} else {
		missing = append(missing, fmt.Sprintf("minimum %d characters", MinPasswordLength))
	}
	switch {
	case c.weak.Contains(password):
		missing = append(missing, "not a common password")
	case c.banned.Contains(password):
		missing = append(missing, "not a banned password")
	default:
		paramsMet++
	}

	return Result{
		Strength: strengthNames[paramsMet],
		Score:    scoreFor(paramsMet),
		Message:  buildMessage(paramsMet, missing),
	}
}

// scoreFor compresses 0..6 parameters onto the 0..4 display scale; four
// parameters still rate as Fair-level protection.
func scoreFor(paramsMet int) int {
	switch {
	case paramsMet <= 1:
		return 0
	case paramsMet == 2:
		return 1
	case paramsMet <= 4:
		return 2
	case paramsMet == 5:
		return 3
	default:
		return 4
	}
}

func buildMessage(paramsMet int, missing []string) string {
	missingList := strings.Join(missing, ", ")
	switch {
	case paramsMet == 6:
		return fmt.Sprintf("Perfect! All security requirements met. (%d/6 parameters)", paramsMet)
	case paramsMet >= 5:
		return fmt.Sprintf("Strong password. Missing: %s. (%d/6 parameters)", missingList, paramsMet)
	case paramsMet >= 3:
		return fmt.Sprintf("Fair password. Missing: %s. (%d/6 parameters)", missingList, paramsMet)
	default:
		return fmt.Sprintf("Weak password. Missing: %s. (%d/6 parameters)", missingList, paramsMet)
	}
}

// Suggest lists concrete improvements for the password, in a fixed order.
func (c *Checker) Suggest(password string) []string {
	var suggestions []string

	if len(password) < MinPasswordLength {
		suggestions = append(suggestions, fmt.Sprintf("Increase length to at least %d characters", MinPasswordLength))
	}
	if !containsFunc(password, unicode.IsUpper) {
		suggestions = append(suggestions, "Add uppercase letters")
	}
	if !containsFunc(password, unicode.IsLower) {
		suggestions = append(suggestions, "Add lowercase letters")
	}
	if !containsFunc(password, unicode.IsDigit) {
		suggestions = append(suggestions, "Add numbers")
	}
	if !strings.ContainsAny(password, specialCharacters) {
		suggestions = append(suggestions, "Add special characters")
	}
	if c.weak.Contains(password) {
		suggestions = append(suggestions, "Avoid common passwords")
	} else if c.banned.Contains(password) {
		suggestions = append(suggestions, "This password is banned due to security breaches")
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, "Your password meets all requirements!")
	}
	return suggestions
}
