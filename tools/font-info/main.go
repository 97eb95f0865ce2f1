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

// Font-info prints a summary of font metadata.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/glyf"

	"seehuhn.de/go/fonttools/fontdata"
	"seehuhn.de/go/fonttools/paths"
	"seehuhn.de/go/fonttools/sfntfile"
	"seehuhn.de/go/fonttools/tools/internal/buildinfo"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "font-info — print a summary of font metadata\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("font-info"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  font-info <font> ...\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	for i, fname := range flag.Args() {
		if i > 0 {
			fmt.Println()
		}
		if err := run(fname); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func run(fname string) error {
	fname, err := paths.Resolve(fname)
	if err != nil {
		return err
	}
	raw, err := sfntfile.ReadFile(fname)
	if err == nil {
		return show(fname, raw)
	}
	if errors.Is(err, sfntfile.ErrCollection) {
		return fmt.Errorf("%s is a font collection, use \"ttc-tool dump %s\"",
			fname, fname)
	}
	return err
}

func show(fname string, raw *sfntfile.Font) error {
	font, err := sfnt.ReadFile(fname)
	if err != nil {
		return err
	}

	fmt.Printf("file:       %s\n", fname)
	fmt.Printf("family:     %s\n", font.FamilyName)
	if sub, ok := sfntfile.Name(raw, 2); ok {
		fmt.Printf("subfamily:  %s\n", sub)
	}
	fmt.Printf("PS name:    %s\n", font.PostScriptName())
	fmt.Printf("version:    %s\n", fontdata.Version(font))
	fmt.Printf("upem:       %d\n", font.UnitsPerEm)
	fmt.Printf("weight:     %d\n", font.Weight)
	fmt.Printf("glyphs:     %d\n", font.NumGlyphs())

	switch outlines := font.Outlines.(type) {
	case *glyf.Outlines:
		kind := "TrueType (glyf)"
		if outlines.Names != nil {
			kind += ", with glyph names"
		}
		fmt.Printf("outlines:   %s\n", kind)
	case *cff.Outlines:
		kind := "CFF"
		if outlines.ROS != nil {
			kind += fmt.Sprintf(", CID-keyed (%s-%s-%d)",
				outlines.ROS.Registry, outlines.ROS.Ordering, outlines.ROS.Supplement)
		}
		fmt.Printf("outlines:   %s\n", kind)
	}

	var keys []string
	for key := range font.CMapTable {
		keys = append(keys, fmt.Sprintf("(%d,%d)", key.PlatformID, key.EncodingID))
	}
	sort.Strings(keys)
	fmt.Printf("cmap:       %v\n", keys)

	if cov, err := fontdata.Coverage(font); err == nil {
		fmt.Printf("coverage:   %d characters\n", cov.Len())
	}

	fmt.Printf("bbox:       %v\n", font.FontBBox())
	fmt.Printf("ascent:     %d\n", font.Ascent)
	fmt.Printf("descent:    %d\n", font.Descent)
	fmt.Printf("line gap:   %d\n", font.LineGap)
	fmt.Printf("cap height: %d\n", font.CapHeight)
	fmt.Printf("x-height:   %d\n", font.XHeight)

	fmt.Printf("tables:     %v\n", raw.Tags())

	return nil
}
