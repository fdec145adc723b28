package core

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	numberPrefix  = regexp.MustCompile(`^\d+[.\-)]\s*`)
	trailingPunct = regexp.MustCompile(`[.:;]$`)
)

// combiningMarks is the U+0300-U+036F block that NFD splits accents into.
var combiningMarks = runes.In(&unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036F, Stride: 1}},
})

// StripAccents decomposes the text and drops combining diacritical marks.
func StripAccents(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(combiningMarks))
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

// CleanQuestion normalizes question text so the same question matches across exports
// that number, accent or punctuate it differently.
func CleanQuestion(text string) string {
	s := numberPrefix.ReplaceAllString(text, "")
	s = strings.ToLower(s)
	s = StripAccents(s)
	s = strings.Join(strings.Fields(s), " ")
	return trailingPunct.ReplaceAllString(s, "")
}

// foldName normalizes a department name for accent and case insensitive matching.
func foldName(name string) string {
	return strings.Join(strings.Fields(StripAccents(strings.ToLower(name))), " ")
}
