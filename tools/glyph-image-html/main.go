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

// Glyph-image-html builds an interactive HTML page from the output of
// glyph-image-compare.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"seehuhn.de/go/fonttools/glyphimage"
	"seehuhn.de/go/fonttools/glyphimage/report"
	"seehuhn.de/go/fonttools/paths"
	"seehuhn.de/go/fonttools/tools/internal/buildinfo"
	"seehuhn.de/go/fonttools/tools/internal/log"
)

func main() {
	in := flag.String("i", "", "input directory from glyph-image-compare (required)")
	out := flag.String("o", "", "output HTML file (required)")
	title := flag.String("t", "glyph comparison", "page title")
	compress := flag.Bool("compress", false, "optimise the PNG images first")
	jobs := flag.Int("jobs", 0, "parallel jobs for -compress (0 = one per CPU)")
	verbose := flag.Bool("v", false, "print debugging output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "glyph-image-html — build an HTML page of glyph differences\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("glyph-image-html"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  glyph-image-html -i <dir> -o <page.html>\n\n")
		fmt.Fprintf(os.Stderr, "The images and the supporting JavaScript and CSS files are\n")
		fmt.Fprintf(os.Stderr, "copied next to the output file, so that the page is\n")
		fmt.Fprintf(os.Stderr, "self-contained.  With -compress, pngquant and zopflipng are\n")
		fmt.Fprintf(os.Stderr, "run on the images first.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 0 || *in == "" || *out == "" {
		flag.Usage()
		os.Exit(1)
	}
	logger := log.New(*verbose)

	err := run(logger, *in, *out, *title, *compress, *jobs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(logger zerolog.Logger, in, out, title string, compress bool, jobs int) error {
	in, err := paths.Resolve(in)
	if err != nil {
		return err
	}

	if compress {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		logger.Debug().Str("dir", in).Msg("optimising images")
		if err := glyphimage.CompressImages(ctx, in, jobs); err != nil {
			return err
		}
	}

	if err := report.Generate(title, in, out, nil); err != nil {
		return err
	}
	logger.Info().Str("page", out).Msg("wrote report")
	return nil
}
