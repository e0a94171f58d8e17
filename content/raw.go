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

package content

import (
	"fmt"
	"io"
	"unicode/utf8"

	dicterr "github.com/ianlewis/dictreader/errors"
	"github.com/ianlewis/dictreader/index"
)

// Raw is a random-access reader over an uncompressed .dict file.
type Raw struct {
	r      io.ReadSeeker
	length int64
}

// NewRaw records the total length of r (by seeking to its end) and
// returns a reader ready to serve Fetch calls.
func NewRaw(r io.ReadSeeker) (*Raw, error) {
	length, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: seeking to end: %w", dicterr.Base, err)
	}
	return &Raw{r: r, length: length}, nil
}

// Fetch implements Reader.
func (c *Raw) Fetch(loc index.Location) (string, error) {
	if loc.Size > dicterr.MaxDefinitionSize {
		return "", dicterr.ErrMemory
	}
	if loc.Offset+loc.Size > uint64(c.length) {
		return "", fmt.Errorf("%w: %w", dicterr.Base, io.ErrUnexpectedEOF)
	}

	if _, err := c.r.Seek(int64(loc.Offset), io.SeekStart); err != nil {
		return "", fmt.Errorf("%w: seeking: %w", dicterr.Base, err)
	}

	buf := make([]byte, loc.Size)
	if _, err := io.ReadFull(c.r, buf); err != nil {
		return "", fmt.Errorf("%w: reading definition: %w", dicterr.Base, err)
	}

	if !utf8.Valid(buf) {
		return "", fmt.Errorf("%w: definition is not valid UTF-8", dicterr.Base)
	}

	return string(buf), nil
}
