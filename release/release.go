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

// Package release packs font files into distribution tarballs.
package release

import (
	"archive/tar"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/klauspost/compress/gzip"
)

// Tarball writes a gzip-compressed tar archive to dst.  The files are
// selected by glob patterns relative to root, stored under prefix,
// and sorted by name so that the archive is reproducible.  Only
// regular files are packed.
func Tarball(dst io.Writer, root, prefix string, patterns ...string) error {
	var files []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return err
		}
		for _, match := range matches {
			rel, err := filepath.Rel(root, match)
			if err != nil {
				return err
			}
			if !seen[rel] {
				seen[rel] = true
				files = append(files, rel)
			}
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("release: no files match %v", patterns)
	}
	sort.Strings(files)

	zw := gzip.NewWriter(dst)
	tw := tar.NewWriter(zw)
	for _, rel := range files {
		fname := filepath.Join(root, rel)
		info, err := os.Stat(fname)
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			continue
		}

		hdr := &tar.Header{
			Name:    path.Join(prefix, filepath.ToSlash(rel)),
			Mode:    0o644,
			Size:    info.Size(),
			ModTime: info.ModTime().Truncate(time.Second),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		fd, err := os.Open(fname)
		if err != nil {
			return err
		}
		_, err = io.Copy(tw, fd)
		fd.Close()
		if err != nil {
			return err
		}
	}
	if err := tw.Close(); err != nil {
		return err
	}
	return zw.Close()
}

// TarballFile is like Tarball but writes to the named file.
func TarballFile(fname, root, prefix string, patterns ...string) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = Tarball(fd, root, prefix, patterns...)
	if err2 := fd.Close(); err == nil {
		err = err2
	}
	return err
}

// Manifest writes a checksum manifest in the format of sha256sum(1)
// for the given files.  Entries use the base name of each file.
func Manifest(dst io.Writer, files ...string) error {
	for _, fname := range files {
		fd, err := os.Open(fname)
		if err != nil {
			return err
		}
		h := sha256.New()
		_, err = io.Copy(h, fd)
		fd.Close()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(dst, "%x  %s\n", h.Sum(nil), filepath.Base(fname))
		if err != nil {
			return err
		}
	}
	return nil
}

// ManifestFile writes the manifest to the named file, conventionally
// "SHA256SUMS".
func ManifestFile(fname string, files ...string) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = Manifest(fd, files...)
	if err2 := fd.Close(); err == nil {
		err = err2
	}
	return err
}
