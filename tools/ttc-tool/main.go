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

// Ttc-tool inspects, unpacks and builds TrueType collections.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/fonttools/paths"
	"seehuhn.de/go/fonttools/sfntfile"
	"seehuhn.de/go/fonttools/tools/internal/buildinfo"
)

func main() {
	out := flag.String("o", "", "output file name (for \"build\")")
	dir := flag.String("d", ".", "output directory (for \"extract\")")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ttc-tool — inspect, unpack and build TrueType collections\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("ttc-tool"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  ttc-tool [names] <file.ttc>\n")
		fmt.Fprintf(os.Stderr, "  ttc-tool dump <file.ttc>\n")
		fmt.Fprintf(os.Stderr, "  ttc-tool extract [-d <dir>] <file.ttc>\n")
		fmt.Fprintf(os.Stderr, "  ttc-tool build -o <file.ttc> <names-file>\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  names    list the PostScript names of the member fonts\n")
		fmt.Fprintf(os.Stderr, "  dump     show the table structure, including shared tables\n")
		fmt.Fprintf(os.Stderr, "  extract  write each member to its own font file, plus a\n")
		fmt.Fprintf(os.Stderr, "           <base>_names.txt file listing the members in order\n")
		fmt.Fprintf(os.Stderr, "  build    pack the fonts named in <names-file> into a\n")
		fmt.Fprintf(os.Stderr, "           collection, sharing identical tables\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	op := "names"
	switch args[0] {
	case "names", "dump", "extract", "build":
		op = args[0]
		args = args[1:]
	}
	if len(args) != 1 {
		flag.Usage()
		os.Exit(1)
	}

	var err error
	switch op {
	case "names":
		err = runNames(args[0])
	case "dump":
		err = runDump(args[0])
	case "extract":
		err = runExtract(args[0], *dir)
	case "build":
		if *out == "" {
			flag.Usage()
			os.Exit(1)
		}
		err = runBuild(args[0], *out)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readCollection(fname string) (*sfntfile.Collection, error) {
	fname, err := paths.Resolve(fname)
	if err != nil {
		return nil, err
	}
	return sfntfile.ReadCollectionFile(fname)
}

func runNames(fname string) error {
	ttc, err := readCollection(fname)
	if err != nil {
		return err
	}
	for i, name := range ttc.Names() {
		fmt.Printf("%d: %s\n", i, name)
	}
	return nil
}

func runDump(fname string) error {
	ttc, err := readCollection(fname)
	if err != nil {
		return err
	}
	return ttc.Dump(os.Stdout)
}

func runExtract(fname, dir string) error {
	ttc, err := readCollection(fname)
	if err != nil {
		return err
	}
	if err := paths.EnsureDir(dir, false); err != nil {
		return err
	}

	memberNames := make([]string, len(ttc.Fonts))
	for i, font := range ttc.Fonts {
		memberNames[i] = ttc.MemberFileName(i)
		outName := filepath.Join(dir, memberNames[i])
		if err := font.WriteFile(outName); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outName)
	}

	// The names file records the member order, so that "build" can
	// reassemble the collection.
	base := strings.TrimSuffix(filepath.Base(fname), filepath.Ext(fname))
	listName := filepath.Join(dir, base+"_names.txt")
	var list strings.Builder
	for _, name := range memberNames {
		list.WriteString(name)
		list.WriteByte('\n')
	}
	if err := os.WriteFile(listName, []byte(list.String()), 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", listName)
	return nil
}

func runBuild(listName, out string) error {
	fd, err := os.Open(listName)
	if err != nil {
		return err
	}
	defer fd.Close()

	dir := filepath.Dir(listName)
	ttc := &sfntfile.Collection{Version: sfntfile.TTCVersion1}
	scanner := bufio.NewScanner(fd)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		font, err := sfntfile.ReadFile(filepath.Join(dir, line))
		if err != nil {
			return err
		}
		ttc.Fonts = append(ttc.Fonts, font)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(ttc.Fonts) == 0 {
		return fmt.Errorf("%s: no font names found", listName)
	}

	return ttc.WriteFile(out)
}
