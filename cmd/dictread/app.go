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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = errors.New("parsing flags")

// indexFlag and contentFlag name the two file path flags shared by every
// subcommand.
const (
	indexFlag   = "index"
	contentFlag = "content"
)

func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli`
	// handles the flag with the root command such that it takes a
	// command name argument but we don't want that for our subcommands.
	//
	// This is done because `dictread --help lookup` would otherwise
	// display a "command lookup not found" error instead of the help.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// must checks the error and panics if not nil.
func must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

func newDictreadApp() *cli.App {
	fileFlags := []cli.Flag{
		&cli.StringFlag{
			Name:     indexFlag,
			Usage:    "path to the dictionary .index file",
			Aliases:  []string{"i"},
			Required: true,
		},
		&cli.StringFlag{
			Name:     contentFlag,
			Usage:    "path to the dictionary .dict or .dict.dz file",
			Aliases:  []string{"c"},
			Required: true,
		},
	}

	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Look up words in a DICT-format dictionary.",
		Description: strings.Join([]string{
			"dictread looks up words in a DICT-format dictionary: an .index file",
			"paired with a .dict or dictzip-compressed .dict.dz content file.",
		}, "\n"),
		Copyright:       "Google LLC",
		HideHelp:        true,
		HideHelpCommand: true,
		Commands: []*cli.Command{
			{
				Name:      "lookup",
				Usage:     "look up a word and print its definitions",
				ArgsUsage: "WORD",
				Flags: append(append([]cli.Flag{}, fileFlags...),
					&cli.BoolFlag{
						Name:               "fuzzy",
						Usage:              "allow edit-distance-1 matches",
						DisableDefaultText: true,
					},
					&cli.BoolFlag{
						Name:               "relaxed",
						Usage:              "also compare headwords with diacritics stripped",
						DisableDefaultText: true,
					},
				),
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("%w: expected exactly one word argument", ErrFlagParse)
					}
					l := lookup{
						indexPath:   c.String(indexFlag),
						contentPath: c.String(contentFlag),
						word:        c.Args().First(),
						fuzzy:       c.Bool("fuzzy"),
						relaxed:     c.Bool("relaxed"),
					}
					return l.Run(c.App.Writer)
				},
			},
			{
				Name:  "info",
				Usage: "print dictionary metadata",
				Flags: fileFlags,
				Action: func(c *cli.Context) error {
					i := info{
						indexPath:   c.String(indexFlag),
						contentPath: c.String(contentFlag),
					}
					return i.Run(c.App.Writer)
				},
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"v"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "license",
				Usage:              "print license information and exit",
				Aliases:            []string{"L"},
				DisableDefaultText: true,
			},
		},
		Action: func(c *cli.Context) error {
			switch {
			case c.Bool("license"):
				return printLicense(c)
			case c.Bool("version"):
				return printVersion(c)
			default:
				return cli.ShowAppHelp(c)
			}
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}

			// Report the error, then exit with a code for its kind.
			_ = must(fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", c.App.Name, err))
			if errors.Is(err, ErrFlagParse) {
				cli.OsExiter(ExitCodeFlagParseError)
				return
			}

			cli.OsExiter(ExitCodeUnknownError)
		},
	}
}
