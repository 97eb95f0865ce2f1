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

// Glyph-image-pair matches up the glyphs of two fonts, based on their
// character mappings and on the rendered glyph images.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"seehuhn.de/go/fonttools/glyphimage"
	"seehuhn.de/go/fonttools/paths"
	"seehuhn.de/go/fonttools/tools/internal/buildinfo"
	"seehuhn.de/go/fonttools/tools/internal/profile"
)

func main() {
	base := flag.String("b", "", "base glyph image file or font (required)")
	target := flag.String("t", "", "target glyph image file or font (required)")
	out := flag.String("o", "", "output file name (default stdout)")
	size := flag.Int("size", 128, "pixel size when rendering from a font")
	cpuprofile := flag.String("cpuprofile", "", "write CPU profile to `file`")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "glyph-image-pair — match up the glyphs of two fonts\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("glyph-image-pair"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  glyph-image-pair -b <base.txt> -t <target.txt> [-o <pairs.txt>]\n\n")
		fmt.Fprintf(os.Stderr, "The inputs are glyph image files as written by glyph-image.\n")
		fmt.Fprintf(os.Stderr, "Font files (.ttf, .otf) are rendered on the fly, using the\n")
		fmt.Fprintf(os.Stderr, "external glyph-image program.  Glyphs reachable from the cmap\n")
		fmt.Fprintf(os.Stderr, "are paired by codepoint, the remaining glyphs by image\n")
		fmt.Fprintf(os.Stderr, "similarity.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 0 || *base == "" || *target == "" {
		flag.Usage()
		os.Exit(1)
	}

	err := run(*base, *target, *out, *size, *cpuprofile, *memprofile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadCollection reads a glyph image file, or renders one from a font
// file.
func loadCollection(ctx context.Context, fname string, size int) (*glyphimage.Collection, error) {
	fname, err := paths.Resolve(fname)
	if err != nil {
		return nil, err
	}
	switch filepath.Ext(fname) {
	case ".ttf", ".otf":
		return glyphimage.Capture(ctx, fname, size)
	}
	return glyphimage.ReadCollectionFile(fname)
}

func run(base, target, out string, size int, cpuprofile, memprofile string) error {
	stop, err := profile.Start(cpuprofile, memprofile)
	if err != nil {
		return err
	}
	defer stop()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	baseColl, err := loadCollection(ctx, base, size)
	if err != nil {
		return err
	}
	targetColl, err := loadCollection(ctx, target, size)
	if err != nil {
		return err
	}

	info, err := glyphimage.CollectionPairs(baseColl, targetColl)
	if err != nil {
		return err
	}

	if out == "" {
		return info.Write(os.Stdout)
	}
	return info.WriteFile(out)
}
