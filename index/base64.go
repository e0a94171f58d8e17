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
	dicterr "github.com/ianlewis/dictreader/errors"
)

// digitAlphabet is the base-64-with-a-twist digit order used by dictfmt
// for index offsets and sizes: A-Z, a-z, 0-9, +, / mapping to 0-63. This is
// not standard base64 (RFC 4648 uses the same alphabet but little-endian
// bit packing); here each character is a big-endian base-64 digit, most
// significant first.
const digitAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// digitValue returns the 0-63 value for a single alphabet character, or
// false if ch is not part of the alphabet.
func digitValue(ch rune) (uint64, bool) {
	switch {
	case ch >= 'A' && ch <= 'Z':
		return uint64(ch) - 'A', true
	case ch >= 'a' && ch <= 'z':
		return uint64(ch) - 'a' + 26, true
	case ch >= '0' && ch <= '9':
		return uint64(ch) - '0' + 52, true
	case ch == '+':
		return 62, true
	case ch == '/':
		return 63, true
	default:
		return 0, false
	}
}

// DecodeOffset decodes a base-64-with-a-twist digit string into a 64-bit
// offset or size. line and col are used only for diagnostics in the
// returned *dicterr.InvalidCharacterError; the caller supplies the
// position within the index file, not within s. Empty input decodes to 0.
//
// Digits are most-significant-first, so each step is "multiply the running
// total by 64 and add the next digit" -- equivalent to the spec's
// Σ digit(c_i) · 64^(L-1-i) without computing the powers directly.
func DecodeOffset(s string, line, col int) (uint64, error) {
	var result uint64
	for i, ch := range s {
		v, ok := digitValue(ch)
		if !ok {
			return 0, &dicterr.InvalidCharacterError{Char: ch, Line: line, Column: col + i}
		}
		result = result*64 + v
	}
	return result, nil
}

// EncodeOffset encodes n into the minimal base-64-with-a-twist digit
// string (no leading 'A' padding). EncodeOffset(0) returns "", matching
// DecodeOffset("") == 0, so that encode(decode(s)) == lstrip_A(s) holds
// for every well-formed digit string s, including an all-'A' one.
func EncodeOffset(n uint64) string {
	if n == 0 {
		return ""
	}
	var digits []byte
	for n > 0 {
		digits = append(digits, digitAlphabet[n%64])
		n /= 64
	}
	// digits were collected least-significant-first; reverse for
	// big-endian output.
	out := make([]byte, len(digits))
	for i, d := range digits {
		out[len(digits)-1-i] = d
	}
	return string(out)
}
