// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package index

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize applies case-folding and punctuation stripping per the flags
// in md: if !md.AllChars, only letters, digits, and whitespace are kept; if
// !md.CaseSensitive, the result is lower-cased. changed reports whether
// the output differs from s, which callers use to decide whether to
// preserve the original headword.
func Normalize(s string, md Metadata) (normalized string, changed bool) {
	out := s
	if !md.AllChars {
		out = keepAlnumSpace(out)
	}
	if !md.CaseSensitive {
		out = strings.ToLower(out)
	}
	return out, out != s
}

func keepAlnumSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// diacriticStripper decomposes to NFD, drops non-spacing marks, then
// recomposes to NFC. This is the standard golang.org/x/text idiom for
// transliterating accented Latin text to its unaccented form.
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// asciiFolds holds letters with no canonical Unicode decomposition (NFD
// leaves them untouched) but a conventional ASCII transliteration, such as
// German "ß" -> "ss". Without this table, "straße" would survive diacritic
// stripping as "straße" rather than folding to "strasse".
var asciiFolds = strings.NewReplacer(
	"ß", "ss",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O",
	"đ", "d", "Đ", "D",
	"ł", "l", "Ł", "L",
)

// Transliterate strips diacritics from s for relaxed search: letters with
// a conventional ASCII fold but no canonical decomposition are folded
// first (asciiFolds), then the result is NFD-decomposed, stripped of
// Unicode non-spacing marks (category Mn), and NFC-recomposed.
func Transliterate(s string) string {
	out, _, err := transform.String(diacriticStripper, asciiFolds.Replace(s))
	if err != nil {
		// transform.String over norm/runes transformers does not fail on
		// well-formed UTF-8 input; fall back to the untransformed string
		// rather than losing the query.
		return s
	}
	return out
}
