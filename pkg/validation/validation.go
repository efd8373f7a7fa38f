// Package validation rejects free-text submissions (person names, listing
// titles and descriptions) before they reach storage. All checks run in a
// fixed order and short-circuit on the first failure; the returned reason is
// user-facing text.
package validation

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	turkishLower = cases.Lower(language.Turkish)
	turkishTitle = cases.Title(language.Turkish)

	// Letters (incl. the Turkish extended alphabet), digits, space and a
	// small punctuation set. Line breaks and tabs are allowed in long text.
	allowedTextRe = regexp.MustCompile(`^[a-zA-ZğüşöçıİĞÜŞÖÇ0-9 ,.'"!?()\-` + "\n\r\t" + `]+$`)
	allowedCharRe = regexp.MustCompile(`[a-zA-ZğüşöçıİĞÜŞÖÇ0-9 ,.'"!?()\-` + "\n\r\t" + `]`)
	nameCharsRe   = regexp.MustCompile(`^[a-zA-ZğüşöçıİĞÜŞÖÇ ]+$`)
)

// keyboardPatterns are adjacency runs that never occur in real names or
// titles but constantly show up in throwaway input.
var keyboardPatterns = []string{
	"qwe", "asd", "zxc", "abc", "xyz", "qwerty", "asdf", "asdfg", "zxcvb",
}

const (
	defaultMinLen = 3
	defaultMaxLen = 100
)

type TextOptions struct {
	MinLen int
	MaxLen int
}

func hasKeyboardPattern(word string) bool {
	w := strings.ToLower(word)
	for _, pattern := range keyboardPatterns {
		if strings.Contains(w, pattern) {
			return true
		}
	}
	return false
}

// hasRepeatingChars reports a run of 3 or more identical characters.
func hasRepeatingChars(word string) bool {
	var prev rune
	run := 0
	for _, r := range word {
		if r == prev {
			run++
			if run >= 3 {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// allCharsSame reports whether the text is one character repeated.
func allCharsSame(word string) bool {
	var first rune
	n := 0
	for _, r := range word {
		if n == 0 {
			first = r
		} else if r != first {
			return false
		}
		n++
	}
	return n > 1
}

func containsBanned(text string, bannedWords []string) bool {
	lower := turkishLower.String(text)
	for _, banned := range bannedWords {
		if banned == "" {
			continue
		}
		if strings.Contains(lower, turkishLower.String(banned)) {
			return true
		}
	}
	return false
}

// ValidateTextField checks a free-text field against the shared content
// rules. It is a pure function of its inputs: same text and banned list,
// same verdict.
func ValidateTextField(text string, bannedWords []string, opts TextOptions) (bool, string) {
	if text == "" {
		return false, "Alan boş olamaz."
	}

	minLen := opts.MinLen
	if minLen <= 0 {
		minLen = defaultMinLen
	}
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = defaultMaxLen
	}

	length := len([]rune(text))
	if length < minLen || length > maxLen {
		return false, fmt.Sprintf("Alan %d ile %d karakter arasında olmalıdır.", minLen, maxLen)
	}

	if !allowedTextRe.MatchString(text) {
		invalid := "?"
		for _, r := range text {
			if !allowedCharRe.MatchString(string(r)) {
				invalid = string(r)
				break
			}
		}
		return false, fmt.Sprintf("Alana sadece harf, rakam ve temel noktalama işaretleri girilebilir. Hatalı karakter: '%s'", invalid)
	}

	if hasRepeatingChars(text) {
		return false, "Aynı harf veya karakter üçten fazla tekrar edemez."
	}

	stripped := strings.Join(strings.Fields(text), "")
	if allCharsSame(stripped) {
		return false, "Metin farklı karakterlerden oluşmalıdır."
	}

	if hasKeyboardPattern(text) {
		return false, "Anlamsız dizi tespit edildi."
	}

	if containsBanned(text, bannedWords) {
		return false, "Uygunsuz kelime tespit edildi."
	}

	return true, ""
}

// IsNameValid applies the person-name rules on top of the content rules:
// 2 or 3 words, Turkish title casing, distinct first and last words.
func IsNameValid(name string, bannedWords []string) (bool, string) {
	if name == "" {
		return false, "Ad soyad boş olamaz."
	}

	if !nameCharsRe.MatchString(name) {
		return false, "Ad soyad sadece harflerden oluşmalıdır."
	}

	words := strings.Fields(name)
	if len(words) != 2 && len(words) != 3 {
		return false, "Ad soyad 2 veya 3 kelimeden oluşmalıdır."
	}

	for _, w := range words {
		n := len([]rune(w))
		if n < 2 || n > 20 {
			return false, "Her kelime en az 2, en fazla 20 harfli olmalıdır."
		}
	}

	first := turkishLower.String(words[0])
	last := turkishLower.String(words[len(words)-1])
	if first == last {
		return false, "Ad ve soyad aynı olamaz."
	}

	for _, w := range words {
		if w != turkishTitle.String(w) {
			return false, "Her kelime baş harfi büyük, devamı küçük harf olmalıdır (örn: Ali Veli)."
		}
	}

	for _, w := range words {
		if allCharsSame(w) {
			return false, "Her kelime farklı harflerden oluşmalıdır."
		}
	}

	for _, w := range words {
		if hasRepeatingChars(w) {
			return false, "Aynı harf bir kelimede üçten fazla tekrar edemez."
		}
	}

	for _, w := range words {
		if hasKeyboardPattern(w) {
			return false, "Geçersiz isim formatı: Anlamsız dizi tespit edildi."
		}
	}

	if containsBanned(name, bannedWords) {
		return false, "Ad soyadda uygunsuz kelime kullanılamaz."
	}

	length := len([]rune(name))
	if length < 5 || length > 50 {
		return false, "Ad soyad çok kısa veya çok uzun."
	}

	return true, ""
}

// LoadBannedWords reads the banned-word list (a JSON string array) from
// disk. The list is maintained externally; a missing or malformed file
// means no banned words, not an error. Callers load per invocation, the
// list is not cached process-wide.
func LoadBannedWords(path string) []string {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil
	}
	return words
}
