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

// Glyph-image-compare renders the differences between the glyphs of
// two fonts as a directory of PNG images.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/rs/zerolog"

	"seehuhn.de/go/fonttools/glyphimage"
	"seehuhn.de/go/fonttools/paths"
	"seehuhn.de/go/fonttools/tools/internal/buildinfo"
	"seehuhn.de/go/fonttools/tools/internal/log"
	"seehuhn.de/go/fonttools/tools/internal/profile"
)

func main() {
	base := flag.String("b", "", "base glyph image file or font (required)")
	target := flag.String("t", "", "target glyph image file or font (required)")
	pairFile := flag.String("p", "", "pair file from glyph-image-pair (optional)")
	out := flag.String("o", "", "output directory (required)")
	size := flag.Int("size", 128, "pixel size when rendering from a font")
	verbose := flag.Bool("v", false, "print debugging output")
	cpuprofile := flag.String("cpuprofile", "", "write CPU profile to `file`")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "glyph-image-compare — render glyph differences as images\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("glyph-image-compare"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  glyph-image-compare -b <base.txt> -t <target.txt> -o <dir>\n\n")
		fmt.Fprintf(os.Stderr, "One PNG per glyph pair is written to <dir>, together with a\n")
		fmt.Fprintf(os.Stderr, "%s file describing the fonts and pairs.  Font files\n",
			glyphimage.CompareDataName)
		fmt.Fprintf(os.Stderr, "(.ttf, .otf) are rendered on the fly, using the external\n")
		fmt.Fprintf(os.Stderr, "glyph-image program.  Without -p, the glyph pairing is\n")
		fmt.Fprintf(os.Stderr, "computed on the fly as well.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 0 || *base == "" || *target == "" || *out == "" {
		flag.Usage()
		os.Exit(1)
	}
	logger := log.New(*verbose)

	err := run(logger, *base, *target, *pairFile, *out, *size, *cpuprofile, *memprofile)
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

func run(logger zerolog.Logger, base, target, pairFile, out string, size int, cpuprofile, memprofile string) error {
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

	var info *glyphimage.PairInfo
	if pairFile != "" {
		info, err = glyphimage.ReadPairInfoFile(pairFile)
		if err != nil {
			return err
		}
	} else {
		logger.Debug().Msg("computing glyph pairs")
	}

	d, err := glyphimage.CompareCollections(baseColl, targetColl, info, out)
	if err != nil {
		return err
	}
	logger.Info().
		Int("pairs", len(d.Pairs)).
		Str("dir", out).
		Msg("wrote comparison images")

	return d.WriteFile(out)
}
