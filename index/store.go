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
	"sort"
	"strings"
	"sync"

	"github.com/xrash/smetrics"

	dicterr "github.com/ianlewis/dictreader/errors"
)

// fuzzyDistance is the maximum Levenshtein distance allowed for a fuzzy
// match. The source this module is grounded on fixes this at 1 with no
// tunable, so this module preserves that rather than exposing a parameter.
const fuzzyDistance = 1

// Store holds a dictionary's Metadata and lazily-loaded, sorted Entry
// slice, and answers exact, fuzzy, and relaxed lookups against it. A Store
// is not safe for concurrent use.
type Store struct {
	metadata Metadata
	loader   func() ([]Entry, error)

	once    sync.Once
	entries []sortedEntry
	loadErr error
}

// sortedEntry caches the comparison keys alongside each Entry so Find
// doesn't re-normalize/re-transliterate on every comparison during a
// binary search or linear scan.
type sortedEntry struct {
	entry    Entry
	key      string // normalized headword
	relaxKey string // transliterated normalized headword
}

// NewStore builds a Store over md, deferring the (potentially expensive)
// entry load to the first Find call. loader is called at most once.
func NewStore(md Metadata, loader func() ([]Entry, error)) *Store {
	return &Store{metadata: md, loader: loader}
}

// Metadata returns the dictionary's metadata. It is always available,
// independent of whether entries have been loaded yet.
func (s *Store) Metadata() Metadata {
	return s.metadata
}

func (s *Store) ensureLoaded() error {
	s.once.Do(func() {
		raw, err := s.loader()
		if err != nil {
			s.loadErr = err
			return
		}

		entries := make([]sortedEntry, len(raw))
		for i, e := range raw {
			norm, changed := Normalize(e.Headword, s.metadata)
			// The comparison key always reflects Normalize, since the
			// query is normalized the same way before lookup (§4.4).
			// Whether the stored Headword/Original are rewritten to
			// match is a separate decision, gated on ShouldNormalize.
			if s.metadata.ShouldNormalize && changed && e.Original == "" {
				e.Original = e.Headword
				e.Headword = norm
			}
			entries[i] = sortedEntry{
				entry:    e,
				key:      norm,
				relaxKey: Transliterate(norm),
			}
		}

		// Stable sort so entries that share a normalized key keep their
		// original file order, satisfying "Find ordering" across exact,
		// fuzzy, and relaxed results.
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].key < entries[j].key
		})

		s.entries = entries
	})

	return s.loadErr
}

// Find resolves query to the matching entries. See the package doc and
// §4.4 of the design for the exact/fuzzy/relaxed semantics.
func (s *Store) Find(query string, fuzzy, relaxed bool) ([]Entry, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	norm, _ := Normalize(query, s.metadata)
	norm = strings.TrimSpace(norm)

	if fuzzy {
		return s.findFuzzy(norm, relaxed)
	}
	return s.findExact(norm, relaxed)
}

func (s *Store) keyOf(e sortedEntry, relaxed bool) string {
	if relaxed {
		return e.relaxKey
	}
	return e.key
}

// findExact locates every entry whose comparison key equals target.
//
// entries is sorted by .key, not by .relaxKey, so a binary search is only
// sound for the non-relaxed path: relaxKey order can diverge from key
// order (e.g. transliteration can make two entries that sort far apart
// under .key compare equal under .relaxKey), which would let sort.Search
// silently skip matches outside the contiguous run it finds. The relaxed
// path therefore falls back to a linear scan.
func (s *Store) findExact(query string, relaxed bool) ([]Entry, error) {
	if relaxed {
		target := Transliterate(query)
		var result []Entry
		for _, e := range s.entries {
			if e.relaxKey == target {
				result = append(result, e.entry)
			}
		}
		if len(result) == 0 {
			return nil, &dicterr.WordNotFoundError{Query: query}
		}
		return result, nil
	}

	entries := s.entries
	pivot := sort.Search(len(entries), func(i int) bool {
		return entries[i].key >= query
	})

	if pivot >= len(entries) || entries[pivot].key != query {
		return nil, &dicterr.WordNotFoundError{Query: query}
	}

	lo, hi := pivot, pivot
	for lo > 0 && entries[lo-1].key == query {
		lo--
	}
	for hi+1 < len(entries) && entries[hi+1].key == query {
		hi++
	}

	result := make([]Entry, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		result = append(result, entries[i].entry)
	}
	return result, nil
}

func (s *Store) findFuzzy(query string, relaxed bool) ([]Entry, error) {
	target := query
	if relaxed {
		target = Transliterate(query)
	}

	var result []Entry
	for _, e := range s.entries {
		key := s.keyOf(e, relaxed)
		if smetrics.WagnerFischer(key, target, 1, 1, 1) <= fuzzyDistance {
			result = append(result, e.entry)
		}
	}

	if len(result) == 0 {
		return nil, &dicterr.WordNotFoundError{Query: query}
	}
	return result, nil
}
