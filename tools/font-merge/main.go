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

// Font-merge combines several fonts into one.  The first font gives
// the metrics and metadata, later fonts contribute glyphs for
// codepoints the earlier fonts do not cover.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/fonttools/merge"
	"seehuhn.de/go/fonttools/paths"
	"seehuhn.de/go/fonttools/tools/internal/buildinfo"
)

func main() {
	out := flag.String("o", "", "output file name (required)")
	dir := flag.String("d", "", "read font names from a list file, relative to this directory")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "font-merge — combine several fonts into one\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("font-merge"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  font-merge -o <output> <font> <font> ...\n")
		fmt.Fprintf(os.Stderr, "  font-merge -o <output> -d <dir> <list-file>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nWith -d, the single argument is a text file listing one font\n")
		fmt.Fprintf(os.Stderr, "file name per line.  Blank lines and lines starting with \"#\"\n")
		fmt.Fprintf(os.Stderr, "are ignored.\n")
	}
	flag.Parse()

	if flag.NArg() < 1 || *out == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*out, *dir, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(out, dir string, args []string) error {
	var names []string
	if dir != "" {
		if len(args) != 1 {
			return fmt.Errorf("-d requires exactly one list file argument")
		}
		var err error
		names, err = readList(dir, args[0])
		if err != nil {
			return err
		}
	} else {
		names = args
	}
	if len(names) < 2 {
		return fmt.Errorf("need at least two fonts to merge, got %d", len(names))
	}

	fonts := make([]*sfnt.Font, len(names))
	for i, name := range names {
		name, err := paths.Resolve(name)
		if err != nil {
			return err
		}
		fonts[i], err = sfnt.ReadFile(name)
		if err != nil {
			return err
		}
	}

	res, err := merge.Fonts(fonts)
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

func readList(dir, fname string) ([]string, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	var names []string
	scanner := bufio.NewScanner(fd)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, filepath.Join(dir, line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
