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

// Font-linemetrics copies the vertical line metrics from one font to
// another.  This is used to keep metrics consistent across the fonts
// of a family.
package main

import (
	"flag"
	"fmt"
	"os"

	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/fonttools/fontdata"
	"seehuhn.de/go/fonttools/paths"
	"seehuhn.de/go/fonttools/tools/internal/buildinfo"
)

func main() {
	out := flag.String("o", "", "output file name (required)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "font-linemetrics — copy line metrics between fonts\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("font-linemetrics"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  font-linemetrics -o <output> <font> <donor>\n\n")
		fmt.Fprintf(os.Stderr, "The ascent, descent, line gap, cap height and x-height of\n")
		fmt.Fprintf(os.Stderr, "<donor> are applied to <font> and the result is written to\n")
		fmt.Fprintf(os.Stderr, "<output>.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 || *out == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), flag.Arg(1), *out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(srcName, donorName, out string) error {
	srcName, err := paths.Resolve(srcName)
	if err != nil {
		return err
	}
	donorName, err = paths.Resolve(donorName)
	if err != nil {
		return err
	}

	font, err := sfnt.ReadFile(srcName)
	if err != nil {
		return err
	}
	donor, err := sfnt.ReadFile(donorName)
	if err != nil {
		return err
	}

	m := fontdata.Metrics(donor)
	m.Apply(font)

	fd, err := os.Create(out)
	if err != nil {
		return err
	}
	_, err = font.Write(fd)
	if err2 := fd.Close(); err == nil {
		err = err2
	}
	return err
}
