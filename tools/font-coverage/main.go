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

// Font-coverage reports which characters a font supports.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
	"golang.org/x/text/unicode/runenames"

	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/fonttools/charset"
	"seehuhn.de/go/fonttools/fontdata"
	"seehuhn.de/go/fonttools/paths"
	"seehuhn.de/go/fonttools/tools/internal/buildinfo"
)

// config holds all command-line flag values.
type config struct {
	showInfo   bool
	showRanges bool
	writeText  bool
	limit      string
	perLine    int
	sep        string
	outDir     string
}

func main() {
	cfg := &config{}
	flag.BoolVar(&cfg.showInfo, "info", false, "list codepoints with names (default)")
	flag.BoolVar(&cfg.showRanges, "ranges", false, "print coverage as hex ranges")
	flag.BoolVar(&cfg.writeText, "text", false, "write sample text to <Family>_chars.txt")
	flag.StringVar(&cfg.limit, "limit", "", "restrict to these codepoints (hex ranges)")
	flag.IntVar(&cfg.perLine, "n", 32, "characters per line for -text")
	flag.StringVar(&cfg.sep, "sep", "", "separator between characters for -text")
	flag.StringVar(&cfg.outDir, "d", ".", "output directory for -text")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "font-coverage — report character coverage of fonts\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("font-coverage"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  font-coverage [options] <font> ...\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  font-coverage NotoSans-Regular.ttf\n")
		fmt.Fprintf(os.Stderr, "  font-coverage -ranges -limit \"0000-ffff\" NotoSans-Regular.ttf\n")
		fmt.Fprintf(os.Stderr, "  font-coverage -text -n 16 NotoSans-Regular.ttf\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	if !cfg.showRanges && !cfg.writeText {
		cfg.showInfo = true
	}

	for _, fname := range flag.Args() {
		if err := run(cfg, fname); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func run(cfg *config, fname string) error {
	fname, err := paths.Resolve(fname)
	if err != nil {
		return err
	}
	font, err := sfnt.ReadFile(fname)
	if err != nil {
		return err
	}
	cov, err := fontdata.Coverage(font)
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}

	if cfg.limit != "" {
		limit, err := charset.Parse(cfg.limit, " ")
		if err != nil {
			return err
		}
		cov = cov.Intersect(limit)
	}

	if flag.NArg() > 1 {
		fmt.Printf("%s: %d characters\n", fname, cov.Len())
	}

	if cfg.showInfo {
		// On a terminal, long character names are cut off at the
		// right margin.
		width := 0
		if isatty.IsTerminal(os.Stdout.Fd()) {
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				width = w
			}
		}

		w := bufio.NewWriter(os.Stdout)
		for _, r := range cov.Runes() {
			line := fmt.Sprintf("U+%04X %s", r, runenames.Name(r))
			if width > 0 && len(line) > width {
				line = line[:width]
			}
			fmt.Fprintln(w, line)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	if cfg.showRanges {
		fmt.Println(cov.Format(" "))
	}
	if cfg.writeText {
		return writeSampleText(cfg, font, cov)
	}
	return nil
}

// writeSampleText dumps the covered characters as text, so that the
// font can be proofed in a text editor.  Marks, control characters
// and separators are excluded.
func writeSampleText(cfg *config, font *sfnt.Font, cov charset.Set) error {
	family := strings.ReplaceAll(font.FamilyName, " ", "")
	if family == "" {
		family = "font"
	}
	fname := filepath.Join(cfg.outDir, family+"_chars.txt")

	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(fd)

	n := 0
	for _, r := range cov.Runes() {
		if unicode.In(r, unicode.M, unicode.C, unicode.Z) {
			continue
		}
		if n > 0 {
			if n%cfg.perLine == 0 {
				w.WriteRune('\n')
			} else {
				w.WriteString(cfg.sep)
			}
		}
		w.WriteRune(r)
		n++
	}
	if n > 0 {
		w.WriteRune('\n')
	}

	err = w.Flush()
	if err2 := fd.Close(); err == nil {
		err = err2
	}
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d characters)\n", fname, n)
	return nil
}
