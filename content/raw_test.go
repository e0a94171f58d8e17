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
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	dicterr "github.com/ianlewis/dictreader/errors"
	"github.com/ianlewis/dictreader/index"
)

func TestRaw_Fetch(t *testing.T) {
	t.Parallel()

	r, err := NewRaw(bytes.NewReader([]byte("hello, world")))
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}

	got, err := r.Fetch(index.Location{Offset: 7, Size: 5})
	if diff := cmp.Diff(nil, err, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("Fetch error (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff("world", got); diff != "" {
		t.Errorf("Fetch (-want, +got):\n%s", diff)
	}
}

func TestRaw_Fetch_OutOfBounds(t *testing.T) {
	t.Parallel()

	r, err := NewRaw(bytes.NewReader([]byte("short")))
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}

	_, err = r.Fetch(index.Location{Offset: 0, Size: 100})
	if diff := cmp.Diff(io.ErrUnexpectedEOF, err, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("Fetch error (-want, +got):\n%s", diff)
	}
}

func TestRaw_Fetch_TooLarge(t *testing.T) {
	t.Parallel()

	r, err := NewRaw(bytes.NewReader(make([]byte, dicterr.MaxDefinitionSize+1)))
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}

	_, err = r.Fetch(index.Location{Offset: 0, Size: dicterr.MaxDefinitionSize + 1})
	if diff := cmp.Diff(dicterr.ErrMemory, err, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("Fetch error (-want, +got):\n%s", diff)
	}
}

func TestRaw_Fetch_InvalidUTF8(t *testing.T) {
	t.Parallel()

	r, err := NewRaw(bytes.NewReader([]byte{0xff, 0xfe, 0xfd}))
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}

	_, err = r.Fetch(index.Location{Offset: 0, Size: 3})
	if diff := cmp.Diff(dicterr.Base, err, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("Fetch error (-want, +got):\n%s", diff)
	}
}
