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

package main

import (
	"fmt"
	"io"

	"github.com/ianlewis/dictreader"
)

type lookup struct {
	indexPath   string
	contentPath string
	word        string
	fuzzy       bool
	relaxed     bool
}

func (l *lookup) Run(w io.Writer) error {
	d, err := dictreader.Open(l.indexPath, l.contentPath)
	if err != nil {
		return fmt.Errorf("opening dictionary: %w", err)
	}
	defer d.Close()

	defs, err := d.Lookup(l.word, l.fuzzy, l.relaxed)
	if err != nil {
		return fmt.Errorf("looking up %q: %w", l.word, err)
	}

	for i, def := range defs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n%s\n", def.Headword, def.Text)
	}

	return nil
}
