// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textnorm turns free-text labels into stable lookup keys.
// Category names scraped from different central banks vary in casing and
// punctuation; Normalize maps all such variants onto one key.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Separator joins the words of a normalized key.
const Separator = '_'

// Normalize strips every rune that is not a letter, number, whitespace or
// Separator, collapses whitespace runs, trims, joins the remaining words
// with Separator and lower-cases the result.
//
//	Normalize("Foreign Exchange!!") == "foreign_exchange"
//	Normalize("  Multi   Space ")  == "multi_space"
//
// Normalize is idempotent.
func Normalize(text string) string {
	// Lower-case before filtering: some case mappings emit combining marks
	// that the filter must see.
	lowered := cases.Lower(language.Und).String(norm.NFC.String(text))

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if keep(r) {
			b.WriteRune(r)
		}
	}

	// Compose again: dropping punctuation can leave Hangul jamo adjacent.
	return norm.NFC.String(strings.Join(strings.Fields(b.String()), string(Separator)))
}

func keep(r rune) bool {
	return r == Separator || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r)
}
