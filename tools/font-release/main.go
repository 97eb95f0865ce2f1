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

// Font-release packs a release tree into distribution tarballs.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"seehuhn.de/go/fonttools/paths"
	"seehuhn.de/go/fonttools/release"
	"seehuhn.de/go/fonttools/tools/internal/buildinfo"
	"seehuhn.de/go/fonttools/tools/internal/log"
)

// The release tree contains one subdirectory per flavor.  Flavors
// which are missing from the tree are skipped.
var flavors = []string{"hinted", "unhinted"}

var patterns = []string{"*.ttf", "*.otf", "*.ttc", "LICENSE*", "NOTICE*"}

func main() {
	outDir := flag.String("o", ".", "output directory")
	verbose := flag.Bool("v", false, "print debugging output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "font-release — pack a release tree into tarballs\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("font-release"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  font-release [-o <dir>] <release-tree> <family>\n\n")
		fmt.Fprintf(os.Stderr, "For each of the subdirectories \"hinted\" and \"unhinted\" of\n")
		fmt.Fprintf(os.Stderr, "<release-tree>, the font files together with any LICENSE and\n")
		fmt.Fprintf(os.Stderr, "NOTICE files are packed into <family>-<flavor>.tar.gz.  A\n")
		fmt.Fprintf(os.Stderr, "SHA256SUMS manifest covering the tarballs is written last.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	logger := log.New(*verbose)

	if err := run(logger, flag.Arg(0), flag.Arg(1), *outDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(logger zerolog.Logger, tree, family, outDir string) error {
	tree, err := paths.Resolve(tree)
	if err != nil {
		return err
	}
	if err := paths.EnsureDir(outDir, false); err != nil {
		return err
	}

	var tarballs []string
	for _, flavor := range flavors {
		root := filepath.Join(tree, flavor)
		if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
			logger.Debug().Str("flavor", flavor).Msg("no such subdirectory, skipped")
			continue
		}

		name := family + "-" + flavor + ".tar.gz"
		dst := filepath.Join(outDir, name)
		prefix := family + "-" + flavor
		logger.Info().Str("tarball", name).Msg("packing")
		if err := release.TarballFile(dst, root, prefix, patterns...); err != nil {
			return err
		}
		tarballs = append(tarballs, dst)
	}
	if len(tarballs) == 0 {
		return fmt.Errorf("%s: no release subdirectories found", tree)
	}

	manifest := filepath.Join(outDir, "SHA256SUMS")
	if err := release.ManifestFile(manifest, tarballs...); err != nil {
		return err
	}
	logger.Info().Str("manifest", manifest).Msg("wrote checksums")
	return nil
}
