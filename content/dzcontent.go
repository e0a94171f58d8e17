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
	"bytes"
	"compress/flate"
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"

	dicterr "github.com/ianlewis/dictreader/errors"
	"github.com/ianlewis/dictreader/index"
)

// readCloseResetter wraps io.ReadCloser and flate.Resetter, since
// flate.NewReader returns the former but always actually satisfies the
// latter too. Reusing one across Fetch calls avoids building a fresh
// inflate window per chunk.
type readCloseResetter interface {
	io.ReadCloser
	flate.Resetter
}

// Dz is a chunk-index-driven random-access reader over a .dict.dz file.
// The chunk directory is built once in NewDz from the gzip FEXTRA field
// and never mutated afterward. Dz is not safe for concurrent use: Fetch
// resets and reads from a single shared flate.Reader.
type Dz struct {
	r io.ReadSeeker
	z readCloseResetter

	uchunkLength  int
	chunkOffsets  []int64 // chunkOffsets[i] is the start of compressed chunk i
	endCompressed int64
	ufileLength   uint64
}

// NewDz parses the dictzip header of r (which must be positioned, or
// seekable back to, the start of the stream) and returns a reader ready to
// serve Fetch calls. Any header check failing returns
// dicterr.ErrInvalidFileFormat; there is no partially constructed reader.
func NewDz(r io.ReadSeeker) (*Dz, error) {
	hdr, err := readDzHeader(r)
	if err != nil {
		return nil, err
	}
	if hdr.uchunkLength <= 0 {
		return nil, invalidFormatf("uncompressed chunk length must be positive, got %d", hdr.uchunkLength)
	}

	offsets := make([]int64, len(hdr.chunkSizes))
	pos := hdr.headerEnd
	for i, size := range hdr.chunkSizes {
		offsets[i] = pos
		pos += int64(size)
	}
	endCompressed := pos

	if _, err := r.Seek(endCompressed, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seeking to uncompressed length field: %w", dicterr.Base, err)
	}
	lenBuf := make([]byte, 4)
	if _, err := io.ReadFull(r, lenBuf); err != nil {
		return nil, invalidFormatf("reading uncompressed length: %v", err)
	}

	// flate.NewReader needs a non-nil io.Reader to construct; it is reset
	// to the real chunk bytes before every use in inflateChunk.
	fr := flate.NewReader(bytes.NewReader(nil))

	return &Dz{
		r:             r,
		z:             fr.(readCloseResetter),
		uchunkLength:  hdr.uchunkLength,
		chunkOffsets:  offsets,
		endCompressed: endCompressed,
		ufileLength:   uint64(binary.LittleEndian.Uint32(lenBuf)),
	}, nil
}

// chunkByteRange returns the compressed byte range [offset, offset+length)
// of chunk id.
func (c *Dz) chunkByteRange(id int) (offset int64, length int64) {
	offset = c.chunkOffsets[id]
	if id+1 < len(c.chunkOffsets) {
		return offset, c.chunkOffsets[id+1] - offset
	}
	return offset, c.endCompressed - offset
}

// inflateChunk reads and raw-inflates compressed chunk id, returning
// c.uchunkLength bytes (the chunk's fixed pre-compression size), or, for
// the last chunk, the fewer bytes the uncompressed file length leaves it.
func (c *Dz) inflateChunk(id int) ([]byte, error) {
	offset, length := c.chunkByteRange(id)

	if _, err := c.r.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seeking to chunk %d: %w", dicterr.Base, id, err)
	}

	compressed := make([]byte, length)
	if _, err := io.ReadFull(c.r, compressed); err != nil {
		return nil, fmt.Errorf("%w: reading chunk %d: %w", dicterr.Base, id, err)
	}

	if err := c.z.Reset(bytes.NewReader(compressed), nil); err != nil {
		return nil, fmt.Errorf("%w: resetting inflater for chunk %d: %w", dicterr.Base, id, err)
	}

	want := uint64(c.uchunkLength)
	if id == len(c.chunkOffsets)-1 {
		if start := uint64(id) * want; c.ufileLength > start && c.ufileLength-start < want {
			want = c.ufileLength - start
		}
	}
	uncompressed := make([]byte, want)
	if _, err := io.ReadFull(c.z, uncompressed); err != nil {
		return nil, fmt.Errorf("%w: inflating chunk %d: %w", dicterr.Base, id, err)
	}

	return uncompressed, nil
}

// Fetch implements Reader.
func (c *Dz) Fetch(loc index.Location) (string, error) {
	if loc.Size > dicterr.MaxDefinitionSize {
		return "", dicterr.ErrMemory
	}
	if loc.Offset+loc.Size > c.ufileLength {
		return "", fmt.Errorf("%w: %w", dicterr.Base, io.ErrUnexpectedEOF)
	}
	if loc.Size == 0 {
		return "", nil
	}

	uchunk := uint64(c.uchunkLength)
	first := loc.Offset / uchunk
	// last is the chunk containing the final byte of the range, not the
	// chunk containing loc.Offset+loc.Size: when the range ends exactly
	// on a chunk boundary, that chunk holds none of the requested bytes
	// and may not even exist if the range reaches the end of the file.
	last := first
	if loc.Size > 0 {
		last = (loc.Offset + loc.Size - 1) / uchunk
	}

	chunks := make([][]byte, 0, last-first+1)
	for id := first; id <= last; id++ {
		buf, err := c.inflateChunk(int(id))
		if err != nil {
			return "", err
		}
		chunks = append(chunks, buf)
	}

	data := spliceChunks(chunks, loc, c.uchunkLength)

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: definition is not valid UTF-8", dicterr.Base)
	}
	return string(data), nil
}

// spliceChunks assembles the requested [loc.Offset, loc.Offset+loc.Size)
// uncompressed byte range out of the fully-inflated chunks that cover it.
// chunks[0] is the first covering chunk, chunks[len-1] the last; each is
// uchunkLength bytes (the pre-compression chunk size), except that the
// file's final chunk may be shorter.
func spliceChunks(chunks [][]byte, loc index.Location, uchunkLength int) []byte {
	cutFront := int(loc.Offset) % uchunkLength

	if len(chunks) == 1 {
		return chunks[0][cutFront : cutFront+int(loc.Size)]
	}

	out := make([]byte, 0, int(loc.Size)+uchunkLength)
	out = append(out, chunks[0][cutFront:]...)
	for _, mid := range chunks[1 : len(chunks)-1] {
		out = append(out, mid...)
	}

	// Bytes needed from the last chunk. A zero result here would mean
	// the range needed none of this chunk, but the caller only fetches
	// chunks that contain at least one requested byte, so this is
	// always in (0, uchunkLength].
	tailLen := (int(loc.Size)+cutFront-1)%uchunkLength + 1
	out = append(out, chunks[len(chunks)-1][:tailLen]...)

	return out
}
