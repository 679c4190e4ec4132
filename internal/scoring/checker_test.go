package scoring

import (
	"strings"
	"testing"
)

func newTestChecker() *Checker {
	return NewChecker(DefaultWeakWordlist(), DefaultBannedWordlist())
}

func TestCheckAllParametersMet(t *testing.T) {
	result := newTestChecker().Check("Xk9#mQ2vLp!7")
	if result.Score != 4 {
		t.Fatalf("expected score 4, got %d", result.Score)
	}
	if result.Strength != "Perfect" {
		t.Fatalf("expected Perfect, got %s", result.Strength)
	}
	if result.Message != "Perfect! All security requirements met. (6/6 parameters)" {
		t.Fatalf("unexpected message: %s", result.Message)
	}
}

func TestCheckCommonPassword(t *testing.T) {
	result := newTestChecker().Check("password")
	if result.Score != 0 {
		t.Fatalf("expected score 0, got %d", result.Score)
	}
	if result.Strength != "Critical" {
		t.Fatalf("expected Critical, got %s", result.Strength)
	}
	if !strings.Contains(result.Message, "not a common password") {
		t.Fatalf("message should name the wordlist parameter: %s", result.Message)
	}
}

func TestCheckFourParametersStillFairScore(t *testing.T) {
	// upper + lower + digit + not-in-lists, missing special and length
	result := newTestChecker().Check("Abcdef12")
	if result.Score != 2 {
		t.Fatalf("expected score 2, got %d", result.Score)
	}
	if result.Strength != "Good" {
		t.Fatalf("expected Good, got %s", result.Strength)
	}
	if !strings.Contains(result.Message, "special character") ||
		!strings.Contains(result.Message, "minimum 12 characters") {
		t.Fatalf("unexpected message: %s", result.Message)
	}
}

func TestCheckBannedPassword(t *testing.T) {
	result := newTestChecker().Check("P@ssw0rd")
	if !strings.Contains(result.Message, "not a banned password") {
		t.Fatalf("message should name the banned parameter: %s", result.Message)
	}
}

func TestSuggestOrderingAndFallback(t *testing.T) {
	checker := newTestChecker()

	suggestions := checker.Suggest("abc")
	if len(suggestions) < 4 {
		t.Fatalf("expected several suggestions, got %v", suggestions)
	}
	if !strings.HasPrefix(suggestions[0], "Increase length") {
		t.Fatalf("length suggestion must come first, got %v", suggestions)
	}

	perfect := checker.Suggest("Xk9#mQ2vLp!7")
	if len(perfect) != 1 || perfect[0] != "Your password meets all requirements!" {
		t.Fatalf("expected fallback suggestion, got %v", perfect)
	}
}

func TestSuggestWeakListHint(t *testing.T) {
	suggestions := newTestChecker().Suggest("password")
	found := false
	for _, s := range suggestions {
		if s == "Avoid common passwords" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected common password hint, got %v", suggestions)
	}
}

func TestGeneratePassword(t *testing.T) {
	password, err := GeneratePassword(0)
	if err != nil {
		t.Fatalf("GeneratePassword error: %v", err)
	}
	if len(password) != DefaultPasswordLength {
		t.Fatalf("expected default length %d, got %d", DefaultPasswordLength, len(password))
	}
	for _, c := range password {
		if !strings.ContainsRune(passwordAlphabet, c) {
			t.Fatalf("character %q outside alphabet", c)
		}
	}

	other, err := GeneratePassword(24)
	if err != nil {
		t.Fatalf("GeneratePassword error: %v", err)
	}
	if len(other) != 24 {
		t.Fatalf("expected length 24, got %d", len(other))
	}
	if password == other[:16] {
		t.Fatalf("suspiciously identical generations")
	}
}

func TestWordlistExactMatchOnly(t *testing.T) {
	list := NewWordlist([]string{"hunter2", "  spaced  "})
	if !list.Contains("hunter2") {
		t.Fatalf("expected exact match")
	}
	if list.Contains("hunter22") {
		t.Fatalf("substring should not match")
	}
	if !list.Contains("spaced") {
		t.Fatalf("entries should be trimmed on load")
	}
}
