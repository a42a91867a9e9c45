// Package engraving validates the free-text engraving customers can order
// on switch face plates.
package engraving

import (
	"errors"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// MaxVisibleChars is the engraving length limit counted in grapheme
// clusters, so a multi-code-point emoji takes a single slot.
const MaxVisibleChars = 14

var (
	ErrTooLong           = errors.New("engraving text exceeds 14 characters")
	ErrTooShort          = errors.New("engraving text is empty after trimming")
	ErrInvalidCharacters = errors.New("engraving text contains invalid characters")
)

// zero-width joiner, used inside emoji sequences
const zwj = '‍'

// Validate checks engraving text and returns its canonical form: NFC
// normalized, trimmed, with internal whitespace runs collapsed to single
// spaces. Empty input is valid (engraving is optional) and canonicalizes to
// the empty string. Callers must store the returned value, not the raw
// input, so redisplay round-trips cleanly.
//
// Validate is pure and deterministic; it performs no I/O.
func Validate(input string) (string, error) {
	if input == "" {
		return "", nil
	}

	cleaned := norm.NFC.String(input)
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	n := uniseg.GraphemeClusterCount(cleaned)
	if n > MaxVisibleChars {
		return "", ErrTooLong
	}
	if n < 1 {
		return "", ErrTooShort
	}

	for _, r := range cleaned {
		if !allowedRune(r) {
			return "", ErrInvalidCharacters
		}
	}

	return cleaned, nil
}

// allowedRune admits letters, numbers, punctuation, symbols and whitespace.
// Marks are included so Bangla vowel signs and emoji variation selectors
// survive; the zero-width joiner is allowed for composed emoji. Control
// characters fall outside every admitted category.
func allowedRune(r rune) bool {
	if r == zwj {
		return true
	}
	return unicode.IsLetter(r) ||
		unicode.IsNumber(r) ||
		unicode.IsPunct(r) ||
		unicode.IsSymbol(r) ||
		unicode.IsSpace(r) ||
		unicode.IsMark(r)
}
