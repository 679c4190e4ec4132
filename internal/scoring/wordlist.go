package scoring

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Wordlist holds a set of known-bad passwords for exact-match lookups.
type Wordlist struct {
	words map[string]struct{}
}

func NewWordlist(words []string) *Wordlist {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		set[word] = struct{}{}
	}
	return &Wordlist{words: set}
}

func (w *Wordlist) Contains(word string) bool {
	if w == nil {
		return false
	}
	_, ok := w.words[word]
	return ok
}

func (w *Wordlist) Len() int {
	if w == nil {
		return 0
	}
	return len(w.words)
}

var (
	wordlistCacheMu sync.Mutex
	wordlistCache   = map[string]*Wordlist{}
)

// LoadWordlist reads one password per line. Results are cached per path for
// the process lifetime.
func LoadWordlist(path string) (*Wordlist, error) {
	cleanPath := filepath.Clean(path)

	wordlistCacheMu.Lock()
	cached, ok := wordlistCache[cleanPath]
	wordlistCacheMu.Unlock()
	if ok {
		return cached, nil
	}

	file, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("open wordlist %s: %w", cleanPath, err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read wordlist %s: %w", cleanPath, err)
	}

	list := NewWordlist(words)
	wordlistCacheMu.Lock()
	wordlistCache[cleanPath] = list
	wordlistCacheMu.Unlock()
	return list, nil
}

// defaultWeakPasswords seeds the weak list when no file is configured.
var defaultWeakPasswords = []string{
	"password", "password1", "password123", "123456", "1234567", "12345678",
	"123456789", "1234567890", "qwerty", "qwerty123", "abc123", "letmein",
	"admin", "welcome", "monkey", "iloveyou", "dragon", "football", "baseball",
	"sunshine", "princess", "trustno1", "111111", "000000", "shadow", "master",
}

// defaultBannedPasswords covers credentials known from public breach corpora.
var defaultBannedPasswords = []string{
	"P@ssw0rd", "P@ssword1", "Passw0rd!", "Welcome1", "Welcome123",
	"Admin123", "Qwerty123!", "Letmein1!", "Summer2024", "Winter2024",
}

func DefaultWeakWordlist() *Wordlist {
	return NewWordlist(defaultWeakPasswords)
}

func DefaultBannedWordlist() *Wordlist {
	return NewWordlist(defaultBannedPasswords)
}
