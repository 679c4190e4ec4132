package console

import "strings"

// weakPatterns is the catalog of well-known weak passwords checked before a
// remote call. Matching is advisory: it only produces a warning line and never
// blocks or alters the remote result.
var weakPatterns = []string{
	"password",
	"123456",
	"12345678",
	"qwerty",
	"abc123",
	"letmein",
	"admin",
	"welcome",
	"monkey",
	"iloveyou",
	"dragon",
	"football",
	"111111",
	"sunshine",
}

// MatchWeakPattern reports whether any catalog entry is a case-insensitive
// substring of the password, returning the first matching entry.
func MatchWeakPattern(password string) (string, bool) {
	lowered := strings.ToLower(password)
	for _, pattern := range weakPatterns {
		if strings.Contains(lowered, pattern) {
			return pattern, true
		}
	}
	return "", false
}
