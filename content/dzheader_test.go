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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	dicterr "github.com/ianlewis/dictreader/errors"
)

// fourChunkStream is a dictzip stream carrying the plaintext
// "chunk1chunk2chunk3chunk4" as four 6-byte uncompressed chunks, each
// raw-deflated to 12 compressed bytes, followed by the 4-byte LE
// uncompressed file length (24). The deflate bytes are the same known-good
// sequence used by the reference dictzip implementation this package is
// grounded on.
var fourChunkStream = []byte{
	// Header
	0x1f, 0x8b, // gzip magic
	0x08,       // deflate
	0x04,       // FLG: FEXTRA
	0, 0, 0, 0, // MTIME
	0x0, 0x0, // XFL, OS

	// EXTRA
	0x12, 0x0, // XLEN // 18
	0x52, 0x41, // 'R', 'A'
	0xe, 0x0, // subfield length // 14
	0x1, 0x0, // version
	0x6, 0x0, // uncompressed chunk length // 6
	0x4, 0x0, // chunk count // 4

	// Chunk sizes.
	0xc, 0x0,
	0xc, 0x0,
	0xc, 0x0,
	0xc, 0x0,

	// Compressed data: "chunk1", "chunk2", "chunk3", "chunk4".
	0x4a, 0xce, 0x28, 0xcd, 0xcb, 0x36, 0x04, 0x00, 0x00, 0x00, 0xff, 0xff,
	0x4a, 0xce, 0x28, 0xcd, 0xcb, 0x36, 0x02, 0x00, 0x00, 0x00, 0xff, 0xff,
	0x4a, 0xce, 0x28, 0xcd, 0xcb, 0x36, 0x06, 0x00, 0x00, 0x00, 0xff, 0xff,
	0x4a, 0xce, 0x28, 0xcd, 0xcb, 0x36, 0x01, 0x00, 0x00, 0x00, 0xff, 0xff,

	0x18, 0x00, 0x00, 0x00, // uncompressed length (24), no CRC32 precedes it
}

func TestReadDzHeader(t *testing.T) {
	t.Parallel()

	hdr, err := readDzHeader(bytes.NewReader(fourChunkStream))
	if diff := cmp.Diff(nil, err, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("readDzHeader error (-want, +got):\n%s", diff)
	}

	want := dzHeader{
		uchunkLength: 6,
		chunkSizes:   []int{12, 12, 12, 12},
		headerEnd:    30,
	}
	if diff := cmp.Diff(want, hdr, cmp.AllowUnexported(dzHeader{})); diff != "" {
		t.Errorf("readDzHeader (-want, +got):\n%s", diff)
	}
}

func TestReadDzHeader_BadMagic(t *testing.T) {
	t.Parallel()

	data := append([]byte(nil), fourChunkStream...)
	data[0] = 0x00

	_, err := readDzHeader(bytes.NewReader(data))
	if diff := cmp.Diff(dicterr.ErrInvalidFileFormat, err, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("readDzHeader error (-want, +got):\n%s", diff)
	}
}

func TestReadDzHeader_NoExtra(t *testing.T) {
	t.Parallel()

	data := append([]byte(nil), fourChunkStream...)
	data[3] = 0x00 // clear FEXTRA flag

	_, err := readDzHeader(bytes.NewReader(data))
	if diff := cmp.Diff(dicterr.ErrInvalidFileFormat, err, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("readDzHeader error (-want, +got):\n%s", diff)
	}
}

func TestReadDzHeader_WrongSubfieldVersion(t *testing.T) {
	t.Parallel()

	data := append([]byte(nil), fourChunkStream...)
	data[16] = 0x02 // version field, should be 1

	_, err := readDzHeader(bytes.NewReader(data))
	if diff := cmp.Diff(dicterr.ErrInvalidFileFormat, err, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("readDzHeader error (-want, +got):\n%s", diff)
	}
}
