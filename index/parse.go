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
	"bufio"
	"fmt"
	"io"
	"strings"

	dicterr "github.com/ianlewis/dictreader/errors"
)

// bufScannerBufSize is raised above bufio.Scanner's 64KiB default so a
// single very long index line (a headword with a pathological number of
// tab-separated columns, or dictionaries with unusually long entries)
// doesn't trip bufio.ErrTooLong.
const bufScannerBufSize = 1 << 20

func newLineScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), bufScannerBufSize)
	return s
}

// ParseMetadata scans from the beginning of r while lines begin with a
// headword starting "00-database-" or "00database", collecting locations
// and flags into a MetadataIndex. It stops at the first non-metadata line
// seen after at least one metadata line; before that, any line is
// tolerated in case the file does not begin with metadata.
func ParseMetadata(r io.Reader) (MetadataIndex, error) {
	var md MetadataIndex
	scanner := newLineScanner(r)

	seenMetadata := false
	for lineNum := 0; scanner.Scan(); lineNum++ {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		entry, err := parseLine(line, lineNum)
		if err != nil {
			return md, err
		}

		tail, ok := metadataTail(entry.Headword)
		if !ok {
			if seenMetadata {
				break
			}
			continue
		}

		applyMetadataTail(&md, tail, entry.Location)
		seenMetadata = true
	}

	if err := scanner.Err(); err != nil {
		return md, fmt.Errorf("%w: %w", dicterr.Base, err)
	}

	return md, nil
}

// ParseEntries reads r from its current position (callers rewind it to
// the start of the index first), skips every line whose headword starts
// with "00", and returns the rest in file order.
func ParseEntries(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := newLineScanner(r)

	for lineNum := 0; scanner.Scan(); lineNum++ {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		entry, err := parseLine(line, lineNum)
		if err != nil {
			return nil, err
		}

		if strings.HasPrefix(entry.Headword, "00") {
			continue
		}

		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", dicterr.Base, err)
	}

	return entries, nil
}

// metadataTail returns the portion of headword after the "00-database-" or
// "00database" prefix, and whether headword carried one of those prefixes.
func metadataTail(headword string) (string, bool) {
	switch {
	case strings.HasPrefix(headword, "00-database-"):
		return headword[len("00-database-"):], true
	case strings.HasPrefix(headword, "00database"):
		return headword[len("00database"):], true
	default:
		return "", false
	}
}

// applyMetadataTail dispatches a metadata headword tail per the table in
// §4.2: exact matches for info/short/url, substring matches for case and
// dictfmt, presence-only for allchars, anything else ignored.
func applyMetadataTail(md *MetadataIndex, tail string, loc Location) {
	switch {
	case tail == "info":
		loc := loc
		md.Info = &loc
	case tail == "short":
		loc := loc
		md.ShortName = &loc
	case tail == "url":
		loc := loc
		md.URL = &loc
	case tail == "allchars":
		md.AllChars = true
	case strings.Contains(tail, "case"):
		md.CaseSensitive = true
	case strings.Contains(tail, "dictfmt"):
		md.ShouldNormalize = true
	}
}

// parseLine splits one index line into an Entry: headword \t offset \t
// size [\t original].
func parseLine(line string, lineNum int) (Entry, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		return Entry{}, &dicterr.MissingColumnError{Line: lineNum}
	}

	headword := fields[0]
	col := len(headword) + 1

	offset, err := DecodeOffset(fields[1], lineNum, col)
	if err != nil {
		return Entry{}, err
	}
	col += len(fields[1]) + 1

	size, err := DecodeOffset(fields[2], lineNum, col)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		Headword: headword,
		Location: Location{Offset: offset, Size: size},
	}
	if len(fields) >= 4 {
		entry.Original = fields[3]
	}

	return entry, nil
}
