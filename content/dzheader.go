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
	"encoding/binary"
	"fmt"
	"io"

	dicterr "github.com/ianlewis/dictreader/errors"
)

// gzip header byte values. See RFC 1952 section 2.3.1.
const (
	gzipID1       byte = 0x1f
	gzipID2       byte = 0x8b
	gzipDeflate   byte = 0x08
	flagHeaderCRC byte = 1 << 1
	flagExtra     byte = 1 << 2
	flagName      byte = 1 << 3
	flagComment   byte = 1 << 4
)

// dictzipSubfieldID1 and dictzipSubfieldID2 identify the dictzip random
// access subfield within a gzip FEXTRA field.
const (
	dictzipSubfieldID1 = byte('R')
	dictzipSubfieldID2 = byte('A')
)

// dzHeader is the result of parsing a dictzip stream's gzip header: enough
// to build the chunk offset table and locate the trailing uncompressed
// length field. It is built once at open and never mutated.
type dzHeader struct {
	uchunkLength int
	chunkSizes   []int
	headerEnd    int64
}

// readDzHeader parses the fixed 10-byte gzip header, the FEXTRA field
// carrying the dictzip "RA" subfield, and any optional NAME/COMMENT/CRC16
// fields that follow. r must be positioned at the start of the stream; on
// success the returned headerEnd is the offset of the first byte of
// compressed data.
func readDzHeader(r io.ReadSeeker) (dzHeader, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return dzHeader{}, fmt.Errorf("%w: seeking to start: %w", dicterr.Base, err)
	}

	head := make([]byte, 10)
	if _, err := io.ReadFull(r, head); err != nil {
		return dzHeader{}, invalidFormatf("reading gzip header: %v", err)
	}

	if head[0] != gzipID1 || head[1] != gzipID2 {
		return dzHeader{}, invalidFormatf("bad magic: %02x %02x", head[0], head[1])
	}
	if head[2] != gzipDeflate {
		return dzHeader{}, invalidFormatf("unsupported compression method: %#x", head[2])
	}

	flg := head[3]
	if flg&flagExtra == 0 {
		return dzHeader{}, invalidFormatf("no FEXTRA field (not a dictzip stream)")
	}

	pos := int64(len(head))

	uchunkLength, chunkSizes, n, err := readDzExtra(r)
	if err != nil {
		return dzHeader{}, err
	}
	pos += n

	if flg&flagName != 0 {
		n, err := skipNulTerminated(r)
		if err != nil {
			return dzHeader{}, err
		}
		pos += n
	}

	if flg&flagComment != 0 {
		n, err := skipNulTerminated(r)
		if err != nil {
			return dzHeader{}, err
		}
		pos += n
	}

	if flg&flagHeaderCRC != 0 {
		if _, err := r.Seek(2, io.SeekCurrent); err != nil {
			return dzHeader{}, fmt.Errorf("%w: skipping header CRC: %w", dicterr.Base, err)
		}
		pos += 2
	}

	return dzHeader{
		uchunkLength: uchunkLength,
		chunkSizes:   chunkSizes,
		headerEnd:    pos,
	}, nil
}

// readDzExtra reads the FEXTRA field (length-prefixed by XLEN) and parses
// out the dictzip "RA" subfield. It returns the uncompressed chunk size,
// the per-chunk compressed sizes, and the number of bytes consumed from r
// (2 for XLEN plus XLEN).
func readDzExtra(r io.ReadSeeker) (uchunkLength int, chunkSizes []int, consumed int64, err error) {
	xlenBuf := make([]byte, 2)
	if _, err = io.ReadFull(r, xlenBuf); err != nil {
		return 0, nil, 0, invalidFormatf("reading XLEN: %v", err)
	}
	xlen := binary.LittleEndian.Uint16(xlenBuf)

	extra := make([]byte, xlen)
	if _, err = io.ReadFull(r, extra); err != nil {
		return 0, nil, 0, invalidFormatf("reading FEXTRA: %v", err)
	}
	consumed = 2 + int64(xlen)

	if len(extra) < 2 || extra[0] != dictzipSubfieldID1 || extra[1] != dictzipSubfieldID2 {
		return 0, nil, 0, invalidFormatf("FEXTRA subfield is not dictzip RA")
	}
	if len(extra) < 4 {
		return 0, nil, 0, invalidFormatf("FEXTRA too short for RA subfield header")
	}

	subfieldLength := binary.LittleEndian.Uint16(extra[2:4])
	if subfieldLength != xlen-4 {
		return 0, nil, 0, invalidFormatf(
			"RA subfield length %d does not match XLEN-4 %d", subfieldLength, xlen-4)
	}

	body := extra[4:]
	if len(body) < 6 {
		return 0, nil, 0, invalidFormatf("RA subfield too short for version/chunk header")
	}

	version := binary.LittleEndian.Uint16(body[0:2])
	if version != 1 {
		return 0, nil, 0, invalidFormatf("unsupported dictzip version %d", version)
	}

	uchunkLength = int(binary.LittleEndian.Uint16(body[2:4]))
	chunkCount := int(binary.LittleEndian.Uint16(body[4:6]))
	if chunkCount == 0 {
		return 0, nil, 0, invalidFormatf("chunk count is zero")
	}

	sizesBuf := body[6:]
	maxChunks := len(sizesBuf) / 2
	if maxChunks != chunkCount {
		return 0, nil, 0, invalidFormatf(
			"header declares %d chunks but FEXTRA only has room for %d", chunkCount, maxChunks)
	}

	chunkSizes = make([]int, chunkCount)
	br := bytes.NewReader(sizesBuf)
	sizeBuf := make([]byte, 2)
	for i := 0; i < chunkCount; i++ {
		if _, err := io.ReadFull(br, sizeBuf); err != nil {
			return 0, nil, 0, invalidFormatf("reading chunk size %d: %v", i, err)
		}
		chunkSizes[i] = int(binary.LittleEndian.Uint16(sizeBuf))
	}

	return uchunkLength, chunkSizes, consumed, nil
}

// skipNulTerminated consumes bytes from r up to and including the next
// 0x00, as used for the gzip NAME and COMMENT fields. It returns the
// number of bytes consumed.
func skipNulTerminated(r io.Reader) (int64, error) {
	var consumed int64
	buf := make([]byte, 1)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return consumed, invalidFormatf("reading nul-terminated field: %v", err)
		}
		consumed++
		if buf[0] == 0 {
			return consumed, nil
		}
	}
}

func invalidFormatf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", dicterr.ErrInvalidFileFormat, fmt.Sprintf(format, args...))
}
