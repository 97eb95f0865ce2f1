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

package glyphimage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// FontData describes one of the two fonts in a comparison.
type FontData struct {
	FileHeader
	Codepoints int
	Version    string
}

// GlyphData holds the per-glyph information shown in comparison
// reports.  Rune is -1 for glyphs not reachable through the
// character map; Name is only set when it carries information beyond
// the glyph index.
type GlyphData struct {
	Advance int
	Rune    rune
	Name    string
}

// PairData records the similarity of one glyph pair.  Base or
// Target is -1 for unpaired glyphs.
type PairData struct {
	Name       string
	Base       int
	Target     int
	Similarity int
}

// CompareData is the result of comparing two glyph image
// collections.  MaxFrame is the frame enclosing all comparison
// images.
type CompareData struct {
	BaseFont     FontData
	TargetFont   FontData
	BaseGlyphs   []GlyphData
	TargetGlyphs []GlyphData
	MaxFrame     Frame
	Pairs        []PairData
}

// CompareDataName is the conventional file name for comparison data
// within an output directory.
const CompareDataName = "compare_data.txt"

var fontDataKeys = append(append([]string{}, fileHeaderKeys...),
	"codepoints", "version")

func writeFontData(w io.Writer, label string, fd *FontData) error {
	if _, err := fmt.Fprintf(w, "> %s: [\n", label); err != nil {
		return err
	}
	if err := writeFileHeader(w, &fd.FileHeader); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "> codepoints: %d\n> version: %s\n]\n",
		fd.Codepoints, fd.Version)
	return err
}

func writeGlyphData(w io.Writer, label string, gdata []GlyphData) error {
	if _, err := fmt.Fprintf(w, "> %s: %d\n", label, len(gdata)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "# index advance cp name"); err != nil {
		return err
	}
	for i, g := range gdata {
		cp := ""
		if g.Rune >= 0 {
			cp = fmt.Sprintf("%04x", g.Rune)
		}
		_, err := fmt.Fprintf(w, "%d;%d;%s;%s\n", i, g.Advance, cp, g.Name)
		if err != nil {
			return err
		}
	}
	return nil
}

// Write writes the comparison data in a line-based text format.
func (d *CompareData) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n", time.Now().Format("2006-01-02 15:04:05"))
	if err := writeFontData(bw, "base_fdata", &d.BaseFont); err != nil {
		return err
	}
	if err := writeFontData(bw, "target_fdata", &d.TargetFont); err != nil {
		return err
	}
	if err := writeGlyphData(bw, "base_gdata", d.BaseGlyphs); err != nil {
		return err
	}
	if err := writeGlyphData(bw, "target_gdata", d.TargetGlyphs); err != nil {
		return err
	}

	fmt.Fprintln(bw, "> pair_data:")
	fmt.Fprintf(bw, "> max_frame: %d %d %d %d\n",
		d.MaxFrame.L, d.MaxFrame.T, d.MaxFrame.W, d.MaxFrame.H)
	fmt.Fprintf(bw, "> pairs: %d\n", len(d.Pairs))
	fmt.Fprintln(bw, "# image_name base target similarity (pct)")
	for _, p := range d.Pairs {
		baseStr := ""
		if p.Base >= 0 {
			baseStr = strconv.Itoa(p.Base)
		}
		targetStr := ""
		if p.Target >= 0 {
			targetStr = strconv.Itoa(p.Target)
		}
		fmt.Fprintf(bw, "%s;%s;%s;%d\n", p.Name, baseStr, targetStr, p.Similarity)
	}
	fmt.Fprintln(bw, "# EOF")
	return bw.Flush()
}

// WriteFile writes the comparison data to the file CompareDataName
// in the given directory.
func (d *CompareData) WriteFile(dir string) error {
	fd, err := os.Create(filepath.Join(dir, CompareDataName))
	if err != nil {
		return err
	}
	err = d.Write(fd)
	if err2 := fd.Close(); err == nil {
		err = err2
	}
	return err
}

func readFontData(l *lineReader, label string) (FontData, error) {
	var fd FontData
	val, err := l.keyVal(label)
	if err != nil {
		return fd, err
	}
	if val != "[" {
		return fd, l.errf("expected \"[\" after %s", label)
	}
	header, err := readFileHeader(l)
	if err != nil {
		return fd, err
	}
	fd.FileHeader = *header
	if fd.Codepoints, err = l.keyInt("codepoints"); err != nil {
		return fd, err
	}
	if fd.Version, err = l.keyVal("version"); err != nil {
		return fd, err
	}
	line, err := l.Next()
	if err != nil {
		return fd, err
	}
	if strings.TrimSpace(line) != "]" {
		return fd, l.errf("expected \"]\", got %q", line)
	}
	return fd, nil
}

func readGlyphData(l *lineReader, label string) ([]GlyphData, error) {
	count, err := l.keyInt(label)
	if err != nil {
		return nil, err
	}
	gdata := make([]GlyphData, count)
	for i := range gdata {
		line, err := l.Next()
		if err != nil {
			return nil, err
		}
		parts := strings.SplitN(line, ";", 4)
		if len(parts) != 4 {
			return nil, l.errf("malformed glyph data %q", line)
		}
		adv, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, l.errf("malformed glyph data %q", line)
		}
		r := rune(-1)
		if cp := strings.TrimSpace(parts[2]); cp != "" {
			x, err := strconv.ParseUint(cp, 16, 32)
			if err != nil {
				return nil, l.errf("malformed glyph data %q", line)
			}
			r = rune(x)
		}
		gdata[i] = GlyphData{Advance: adv, Rune: r, Name: parts[3]}
	}
	return gdata, nil
}

// ReadCompareData reads comparison data written by
// [CompareData.Write].
func ReadCompareData(r io.Reader) (*CompareData, error) {
	l := newLineReader(r)
	d := &CompareData{}
	var err error
	if d.BaseFont, err = readFontData(l, "base_fdata"); err != nil {
		return nil, err
	}
	if d.TargetFont, err = readFontData(l, "target_fdata"); err != nil {
		return nil, err
	}
	if d.BaseGlyphs, err = readGlyphData(l, "base_gdata"); err != nil {
		return nil, err
	}
	if d.TargetGlyphs, err = readGlyphData(l, "target_gdata"); err != nil {
		return nil, err
	}

	if _, err := l.keyVal("pair_data"); err != nil {
		return nil, err
	}
	frameStr, err := l.keyVal("max_frame")
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(frameStr)
	if len(fields) != 4 {
		return nil, l.errf("malformed frame %q", frameStr)
	}
	var nums [4]int
	for i, s := range fields {
		nums[i], err = strconv.Atoi(s)
		if err != nil {
			return nil, l.errf("malformed frame %q", frameStr)
		}
	}
	d.MaxFrame = Frame{L: nums[0], T: nums[1], W: nums[2], H: nums[3]}

	count, err := l.keyInt("pairs")
	if err != nil {
		return nil, err
	}
	d.Pairs = make([]PairData, count)
	for i := range d.Pairs {
		line, err := l.Next()
		if err != nil {
			return nil, err
		}
		parts := strings.Split(line, ";")
		if len(parts) != 4 {
			return nil, l.errf("malformed pair %q", line)
		}
		p := PairData{Name: parts[0], Base: -1, Target: -1}
		if s := strings.TrimSpace(parts[1]); s != "" {
			if p.Base, err = strconv.Atoi(s); err != nil {
				return nil, l.errf("malformed pair %q", line)
			}
		}
		if s := strings.TrimSpace(parts[2]); s != "" {
			if p.Target, err = strconv.Atoi(s); err != nil {
				return nil, l.errf("malformed pair %q", line)
			}
		}
		if p.Similarity, err = strconv.Atoi(strings.TrimSpace(parts[3])); err != nil {
			return nil, l.errf("malformed pair %q", line)
		}
		d.Pairs[i] = p
	}

	return d, nil
}

// ReadCompareDataFile reads the comparison data file with the given
// name.
func ReadCompareDataFile(fname string) (*CompareData, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	d, err := ReadCompareData(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return d, nil
}
