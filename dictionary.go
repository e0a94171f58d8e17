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

// Package dictreader provides random-access lookup over a DICT-format
// dictionary: an .index file paired with either a plain .dict content file
// or a dictzip-compressed .dict.dz one.
//
// Dictzip compresses content files using the gzip(1) algorithm (LZ77) in a
// manner that is completely compatible with the gzip file format, adding a
// chunk directory to the FEXTRA header that lets a reader inflate only the
// chunks a lookup actually needs.
// See: https://linux.die.net/man/1/dictzip
// See: https://datatracker.ietf.org/doc/html/rfc1952
//
// Unless otherwise noted, a *Dictionary is not safe for concurrent use:
// callers must serialize their own access to Lookup and Close.
package dictreader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ianlewis/dictreader/content"
	dicterr "github.com/ianlewis/dictreader/errors"
	"github.com/ianlewis/dictreader/index"
)

// Re-exported so callers need only import this package.
var (
	ErrMemory            = dicterr.ErrMemory
	ErrInvalidFileFormat = dicterr.ErrInvalidFileFormat
)

// MaxDefinitionSize is the maximum number of bytes a single definition may
// occupy.
const MaxDefinitionSize = dicterr.MaxDefinitionSize

type (
	InvalidCharacterError = dicterr.InvalidCharacterError
	MissingColumnError    = dicterr.MissingColumnError
	WordNotFoundError     = dicterr.WordNotFoundError
)

// gzipMagic is the first two bytes of any gzip (and therefore dictzip)
// stream. Open sniffs these to choose content.NewDz over content.NewRaw
// rather than trusting the content file's name.
var gzipMagic = [2]byte{0x1f, 0x8b}

// Definition is a single lookup result.
type Definition struct {
	// Headword is the entry's display form: its pre-normalization
	// spelling if the index recorded one, otherwise its stored headword.
	Headword string

	// Text is the definition body fetched from the content file.
	Text string
}

// Dictionary is a single index/content file pair, opened for lookup.
type Dictionary struct {
	indexFile   *os.File
	contentFile *os.File
	content     content.Reader
	store       *index.Store
}

// Open opens the index file at indexPath and the content file at
// contentPath and returns a Dictionary ready for Lookup. contentPath may
// name either a plain .dict file or a dictzip-compressed .dict.dz one;
// Open distinguishes them by sniffing the gzip magic bytes, not by file
// extension.
//
// Entries are not read until the first Lookup; metadata is resolved
// immediately, since info/short_name/url require at most three content
// reads.
func Open(indexPath, contentPath string) (*Dictionary, error) {
	indexFile, err := os.Open(indexPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening index file: %w", dicterr.Base, err)
	}

	contentFile, err := os.Open(contentPath)
	if err != nil {
		indexFile.Close()
		return nil, fmt.Errorf("%w: opening content file: %w", dicterr.Base, err)
	}

	d, err := newDictionary(indexFile, contentFile)
	if err != nil {
		contentFile.Close()
		indexFile.Close()
		return nil, err
	}
	return d, nil
}

func newDictionary(indexFile, contentFile *os.File) (*Dictionary, error) {
	contentReader, err := openContent(contentFile)
	if err != nil {
		return nil, err
	}

	mdIndex, err := index.ParseMetadata(indexFile)
	if err != nil {
		return nil, err
	}

	md, err := resolveMetadata(mdIndex, contentReader)
	if err != nil {
		return nil, err
	}

	store := index.NewStore(md, func() ([]index.Entry, error) {
		if _, err := indexFile.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("%w: seeking index file: %w", dicterr.Base, err)
		}
		return index.ParseEntries(indexFile)
	})

	return &Dictionary{
		indexFile:   indexFile,
		contentFile: contentFile,
		content:     contentReader,
		store:       store,
	}, nil
}

// openContent sniffs the first two bytes of f and constructs the matching
// content.Reader, leaving f positioned however the chosen constructor left
// it (both NewDz and NewRaw seek freely and don't promise a final
// position).
func openContent(f *os.File) (content.Reader, error) {
	magic := make([]byte, 2)
	if _, err := io.ReadFull(f, magic); err != nil {
		return nil, fmt.Errorf("%w: reading content file magic: %w", dicterr.Base, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seeking content file: %w", dicterr.Base, err)
	}

	if magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1] {
		return content.NewDz(f)
	}
	return content.NewRaw(f)
}

// resolveMetadata fetches the info/short_name/url entries (if present)
// from the content file and folds them, with the flags, into a
// index.Metadata.
func resolveMetadata(mdIndex index.MetadataIndex, r content.Reader) (index.Metadata, error) {
	md := index.Metadata{
		AllChars:        mdIndex.AllChars,
		CaseSensitive:   mdIndex.CaseSensitive,
		ShouldNormalize: mdIndex.ShouldNormalize,
	}

	var err error
	if md.Info, err = fetchMetadataText(mdIndex.Info, r); err != nil {
		return index.Metadata{}, err
	}
	if md.ShortName, err = fetchMetadataText(mdIndex.ShortName, r); err != nil {
		return index.Metadata{}, err
	}
	if md.URL, err = fetchMetadataText(mdIndex.URL, r); err != nil {
		return index.Metadata{}, err
	}

	return md, nil
}

func fetchMetadataText(loc *index.Location, r content.Reader) (string, error) {
	if loc == nil {
		return "", nil
	}
	text, err := r.Fetch(*loc)
	if err != nil {
		return "", err
	}
	return cleanMetadataText(text), nil
}

// cleanMetadataText strips the first line whenever a newline is present
// and there is content after it (many dictionaries duplicate the headword
// as the first line of the definition), then trims surrounding whitespace.
func cleanMetadataText(text string) string {
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		if rest := strings.TrimSpace(text[nl+1:]); rest != "" {
			return rest
		}
	}
	return strings.TrimSpace(text)
}

// Metadata returns the dictionary's resolved metadata.
func (d *Dictionary) Metadata() index.Metadata {
	return d.store.Metadata()
}

// Lookup resolves word against the dictionary's entries. fuzzy enables
// Levenshtein-distance-1 matching instead of exact; relaxed additionally
// compares headwords with diacritics stripped. See index.Store.Find for
// the exact precedence.
func (d *Dictionary) Lookup(word string, fuzzy, relaxed bool) ([]Definition, error) {
	entries, err := d.store.Find(word, fuzzy, relaxed)
	if err != nil {
		return nil, err
	}

	defs := make([]Definition, len(entries))
	for i, e := range entries {
		text, err := d.content.Fetch(e.Location)
		if err != nil {
			return nil, err
		}
		defs[i] = Definition{Headword: e.DisplayHeadword(), Text: text}
	}
	return defs, nil
}

// Close closes both underlying files. If both fail to close, the returned
// error joins them.
func (d *Dictionary) Close() error {
	return errors.Join(d.contentFile.Close(), d.indexFile.Close())
}
