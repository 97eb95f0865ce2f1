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

// Cjk-patch applies fixes to CJK fonts before a release.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/fonttools/cjk"
	"seehuhn.de/go/fonttools/paths"
	"seehuhn.de/go/fonttools/sfntfile"
	"seehuhn.de/go/fonttools/tools/internal/buildinfo"
	"seehuhn.de/go/fonttools/tools/internal/log"
)

func main() {
	out := flag.String("o", "", "output file name (required)")
	verbose := flag.Bool("v", false, "print debugging output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cjk-patch — apply fixes to CJK fonts\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("cjk-patch"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  cjk-patch emoji -o <output> <font>\n")
		fmt.Fprintf(os.Stderr, "  cjk-patch ttc -o <output> <file.ttc>\n")
		fmt.Fprintf(os.Stderr, "  cjk-patch thin -o <output> <font>\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  emoji  remove the default-emoji codepoints from the cmap\n")
		fmt.Fprintf(os.Stderr, "  ttc    remove default-emoji codepoints from every member of\n")
		fmt.Fprintf(os.Stderr, "         a collection, keeping shared tables shared\n")
		fmt.Fprintf(os.Stderr, "  thin   change the weight class of a Thin font from 100 to 250\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 || *out == "" {
		flag.Usage()
		os.Exit(1)
	}
	logger := log.New(*verbose)

	var err error
	switch op := flag.Arg(0); op {
	case "emoji":
		err = runEmoji(logger, flag.Arg(1), *out)
	case "ttc":
		err = runTTC(logger, flag.Arg(1), *out)
	case "thin":
		err = runThin(logger, flag.Arg(1), *out)
	default:
		err = fmt.Errorf("unknown command %q", op)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runEmoji(logger zerolog.Logger, in, out string) error {
	in, err := paths.Resolve(in)
	if err != nil {
		return err
	}
	font, err := sfntfile.ReadFile(in)
	if err != nil {
		return err
	}

	changed, err := cjk.RemoveDefaultEmojiRaw(font)
	if err != nil {
		return err
	}
	if !changed {
		logger.Info().Str("font", in).Msg("no default-emoji codepoints found")
	}
	return font.WriteFile(out)
}

func runTTC(logger zerolog.Logger, in, out string) error {
	in, err := paths.Resolve(in)
	if err != nil {
		return err
	}
	ttc, err := sfntfile.ReadCollectionFile(in)
	if err != nil {
		return err
	}

	changed, err := cjk.PatchTTC(ttc)
	if err != nil {
		return err
	}
	if !changed {
		logger.Info().Str("font", in).Msg("no member needed patching")
	}
	logger.Debug().Int("members", len(ttc.Fonts)).Msg("writing collection")
	return ttc.WriteFile(out)
}

func runThin(logger zerolog.Logger, in, out string) error {
	in, err := paths.Resolve(in)
	if err != nil {
		return err
	}
	font, err := sfnt.ReadFile(in)
	if err != nil {
		return err
	}

	if err := cjk.FixThinWeight(font); err != nil {
		return err
	}
	logger.Debug().
		Str("version", font.Version.String()).
		Msg("bumped font version")

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
