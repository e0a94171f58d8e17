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

// Package index parses DICT .index files and answers headword lookups.
//
// Entries are parsed once, lazily, on the first Find call. Metadata is
// always parsed eagerly at construction. A Store is not safe for
// concurrent use; callers must serialize their own access, same as the
// content readers in the sibling content package.
package index

// Location is a byte range into the uncompressed content file.
type Location struct {
	Offset uint64
	Size   uint64
}

// Entry is a single headword-to-location mapping parsed from an index
// file. Original holds the pre-normalization headword when normalization
// rewrote it; it is empty when normalization left the headword unchanged
// (or never ran).
type Entry struct {
	Headword string
	Location Location
	Original string
}

// DisplayHeadword returns the headword that should be shown to a caller:
// the pre-normalization form if one was recorded, otherwise Headword
// itself.
func (e Entry) DisplayHeadword() string {
	if e.Original != "" {
		return e.Original
	}
	return e.Headword
}

// Metadata holds the resolved `00-database-*` entries of a dictionary.
// Info, ShortName, and URL start out as Location references in
// MetadataIndex and are resolved to strings by the caller (they require
// fetching from the content file, which this package does not have access
// to).
type Metadata struct {
	Info            string
	ShortName       string
	URL             string
	AllChars        bool
	CaseSensitive   bool
	ShouldNormalize bool
}

// MetadataIndex is the transient result of parsing the metadata section of
// an index file: locations of the three textual metadata entries, plus the
// three boolean flags. It is discarded once the textual locations are
// resolved into a Metadata.
type MetadataIndex struct {
	Info      *Location
	ShortName *Location
	URL       *Location

	AllChars        bool
	CaseSensitive   bool
	ShouldNormalize bool
}
