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

// Package dicterr defines the error taxonomy shared by the index and
// content packages, plus the definition size limit both enforce. It exists
// so that lower-level packages can return typed errors without importing
// the root dictreader package (which imports them), mirroring the way
// go-dictzip centers its error wrapping on a single base sentinel.
package dicterr

import (
	"errors"
	"fmt"
)

// Base is the root of every error returned by this module. Callers can test
// for any dictreader-originated error with errors.Is(err, dicterr.Base).
var Base = errors.New("dictreader")

// Sentinel errors usable with errors.Is.
var (
	// ErrMemory indicates a requested definition is larger than
	// MaxDefinitionSize. It is returned before any buffer is allocated.
	ErrMemory = fmt.Errorf("%w: definition exceeds maximum size", Base)

	// ErrInvalidFileFormat indicates a dictzip header failed a structural
	// check (magic, FEXTRA, RA subfield, version, chunk count).
	ErrInvalidFileFormat = fmt.Errorf("%w: invalid file format", Base)
)

// MaxDefinitionSize is the maximum number of bytes a single definition may
// occupy. Requests exceeding this fail with ErrMemory before any
// allocation. It is a compile-time constant, not configurable state.
const MaxDefinitionSize = 1_048_576

// InvalidCharacterError reports a byte outside the index base-64 digit
// alphabet, at the given line and column of the index file.
type InvalidCharacterError struct {
	Char   rune
	Line   int
	Column int
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid character %q on line %d at position %d", e.Char, e.Line, e.Column)
}

func (e *InvalidCharacterError) Unwrap() error {
	return Base
}

// MissingColumnError reports an index line with fewer than three
// tab-separated fields.
type MissingColumnError struct {
	Line int
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("line %d: not enough tab-separated columns, expected at least 3", e.Line)
}

func (e *MissingColumnError) Unwrap() error {
	return Base
}

// WordNotFoundError reports a lookup that matched nothing, exact, fuzzy, or
// relaxed.
type WordNotFoundError struct {
	Query string
}

func (e *WordNotFoundError) Error() string {
	return fmt.Sprintf("word %q not found in the dictionary", e.Query)
}

func (e *WordNotFoundError) Unwrap() error {
	return Base
}
