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

	"github.com/rodaine/table"

	"github.com/ianlewis/dictreader"
)

type info struct {
	indexPath   string
	contentPath string
}

func (i *info) Run(w io.Writer) error {
	d, err := dictreader.Open(i.indexPath, i.contentPath)
	if err != nil {
		return fmt.Errorf("opening dictionary: %w", err)
	}
	defer d.Close()

	md := d.Metadata()

	tbl := table.New("field", "value")
	tbl.WithWriter(w)
	tbl.AddRow("short name", md.ShortName)
	tbl.AddRow("info", md.Info)
	tbl.AddRow("url", md.URL)
	tbl.AddRow("all chars", md.AllChars)
	tbl.AddRow("case sensitive", md.CaseSensitive)
	tbl.AddRow("normalized", md.ShouldNormalize)
	tbl.Print()

	return nil
}
