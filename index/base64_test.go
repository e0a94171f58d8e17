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
	"testing"

	"github.com/google/go-cmp/cmp"

	dicterr "github.com/ianlewis/dictreader/errors"
)

func TestDecodeOffset(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   string
		want uint64
		err  error
	}{
		{name: "zero", in: "A", want: 0},
		{name: "single digit", in: "B", want: 1},
		{name: "last single digit", in: "/", want: 63},
		{name: "two digits", in: "BA", want: 64},
		{name: "mixed alphabet", in: "a0+/", want: uint64(26)*64*64*64 + uint64(52)*64*64 + uint64(62)*64 + 63},
		{
			name: "invalid character",
			in:   "A!B",
			err:  &dicterr.InvalidCharacterError{Char: '!', Line: 3, Column: 11},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeOffset(tc.in, 3, 10)
			if diff := cmp.Diff(tc.err, err); diff != "" {
				t.Fatalf("DecodeOffset error (-want, +got):\n%s", diff)
			}
			if tc.err != nil {
				return
			}

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("DecodeOffset (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeOffset_RoundTrip(t *testing.T) {
	t.Parallel()

	values := []uint64{0, 1, 63, 64, 65, 4095, 4096, 1 << 20, 1<<32 - 1, 1 << 40}
	for _, v := range values {
		encoded := EncodeOffset(v)
		decoded, err := DecodeOffset(encoded, 0, 0)
		if err != nil {
			t.Fatalf("DecodeOffset(%q): %v", encoded, err)
		}
		if diff := cmp.Diff(v, decoded); diff != "" {
			t.Errorf("round-trip %d (-want, +got):\n%s", v, diff)
		}
	}
}

func TestEncodeOffset(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in   uint64
		want string
	}{
		{in: 0, want: ""},
		{in: 1, want: "B"},
		{in: 63, want: "/"},
		{in: 64, want: "BA"},
	}

	for _, tc := range testCases {
		got := EncodeOffset(tc.in)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("EncodeOffset(%d) (-want, +got):\n%s", tc.in, diff)
		}
	}
}
