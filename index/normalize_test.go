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
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		in      string
		md      Metadata
		want    string
		changed bool
	}{
		{
			name:    "default lowercases and strips punctuation",
			in:      "Hello, World!",
			md:      Metadata{},
			want:    "hello world",
			changed: true,
		},
		{
			name:    "case sensitive keeps case",
			in:      "Hello, World!",
			md:      Metadata{CaseSensitive: true},
			want:    "Hello World",
			changed: true,
		},
		{
			name:    "all chars keeps punctuation",
			in:      "don't stop",
			md:      Metadata{AllChars: true},
			want:    "don't stop",
			changed: false,
		},
		{
			name:    "all chars and case sensitive is identity",
			in:      "Mme. Curie",
			md:      Metadata{AllChars: true, CaseSensitive: true},
			want:    "Mme. Curie",
			changed: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, changed := Normalize(tc.in, tc.md)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Normalize (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.changed, changed); diff != "" {
				t.Errorf("Normalize changed (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestTransliterate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "no diacritics", in: "strasse", want: "strasse"},
		{name: "acute accent", in: "café", want: "cafe"},
		{name: "eszett folds to ss", in: "straße", want: "strasse"},
		{name: "combining mark sequence", in: "café", want: "cafe"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Transliterate(tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Transliterate (-want, +got):\n%s", diff)
			}
		})
	}
}
