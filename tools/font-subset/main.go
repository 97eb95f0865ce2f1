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

// Font-subset removes glyphs from a font.
package main

import (
	"flag"
	"fmt"
	"os"

	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/fonttools/charset"
	"seehuhn.de/go/fonttools/paths"
	"seehuhn.de/go/fonttools/subset"
	"seehuhn.de/go/fonttools/tools/internal/buildinfo"
)

func main() {
	include := flag.String("include", "", "codepoints to keep (hex ranges)")
	exclude := flag.String("exclude", "", "codepoints to remove (hex ranges)")
	keepLayout := flag.Bool("keep-layout", false, "keep GSUB/GPOS/GDEF tables")
	out := flag.String("o", "", "output file name (required)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "font-subset — remove glyphs from a font\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("font-subset"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  font-subset [options] <font>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCodepoint ranges are space-separated hex values or ranges,\n")
		fmt.Fprintf(os.Stderr, "e.g. \"0020-007e 00a0-00ff 20ac\".  Without -include and\n")
		fmt.Fprintf(os.Stderr, "-exclude, glyphs unreachable from the cmap are pruned.\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  font-subset -include \"0000-04ff\" -o out.ttf in.ttf\n")
		fmt.Fprintf(os.Stderr, "  font-subset -exclude \"1f600-1f64f\" -o out.ttf in.ttf\n")
	}
	flag.Parse()

	if flag.NArg() != 1 || *out == "" {
		flag.Usage()
		os.Exit(1)
	}

	err := run(flag.Arg(0), *out, *include, *exclude, *keepLayout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(in, out, include, exclude string, keepLayout bool) error {
	opt := &subset.Options{KeepLayout: keepLayout}
	var err error
	if include != "" {
		opt.Include, err = charset.Parse(include, " ")
		if err != nil {
			return err
		}
	}
	if exclude != "" {
		opt.Exclude, err = charset.Parse(exclude, " ")
		if err != nil {
			return err
		}
	}

	in, err = paths.Resolve(in)
	if err != nil {
		return err
	}
	font, err := sfnt.ReadFile(in)
	if err != nil {
		return err
	}

	res, err := subset.Font(font, opt)
	if err != nil {
		return err
	}

	fd, err := os.Create(out)
	if err != nil {
		return err
	}
	_, err = res.Write(fd)
	if err2 := fd.Close(); err == nil {
		err = err2
	}
	return err
}
