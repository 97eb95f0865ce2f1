// seehuhn.de/go/fonttools - tools for maintaining font family releases
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Font-dehint removes hinting data from fonts.  Glyph outlines are
// untouched, only the hint tables and the per-glyph instructions are
// dropped.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"seehuhn.de/go/fonttools/dehint"
	"seehuhn.de/go/fonttools/paths"
	"seehuhn.de/go/fonttools/sfntfile"
	"seehuhn.de/go/fonttools/tools/internal/buildinfo"
)

func main() {
	out := flag.String("o", "", "output file name (required)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "font-dehint — remove hinting data from a font\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("font-dehint"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  font-dehint -o <output> <font>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 || *out == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(in, out string) error {
	in, err := paths.Resolve(in)
	if err != nil {
		return err
	}
	font, err := sfntfile.ReadFile(in)
	if errors.Is(err, sfntfile.ErrCollection) {
		return fmt.Errorf("%s is a font collection, extract members with ttc-tool first", in)
	}
	if err != nil {
		return err
	}

	if err := dehint.Strip(font); err != nil {
		return err
	}
	return font.WriteFile(out)
}
