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

// Package content provides random-access readers over DICT content files,
// either plain (Raw) or dictzip-compressed (Dz). Both implement Reader and
// take any io.ReadSeeker, so a caller is free to back one with a plain
// *os.File, a bytes.Reader over a preloaded buffer, or an
// io.NewSectionReader over an mmap-backed io.ReaderAt -- neither
// implementation needs to know. Neither implementation takes ownership of
// the io.ReadSeeker; the caller opened it and the caller closes it.
//
// Unless otherwise noted, readers in this package are not safe for
// concurrent use: fetching mutates the underlying seek position.
package content

import "github.com/ianlewis/dictreader/index"

// Reader fetches a definition from a content file by its uncompressed
// byte range.
type Reader interface {
	// Fetch returns the UTF-8 text at loc. It fails with an error
	// wrapping dicterr.ErrMemory if loc.Size exceeds
	// dicterr.MaxDefinitionSize, before any allocation, and with an
	// error wrapping io.ErrUnexpectedEOF if loc falls outside the
	// content file's bounds.
	Fetch(loc index.Location) (string, error)
}
