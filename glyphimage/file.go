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
	"regexp"
	"strconv"
	"strings"
)

// The glyph image file format is line-based text.  "#" starts a
// comment, blank lines are ignored.  The file header is a fixed
// sequence of "> key: value" lines, followed by one record per
// glyph:
//
//	> glyph: 9;10,32;1 -7 8 7
//	:    c0ff
//	:  20ffff
//	: c0ffffff
//
// The glyph header fields are the glyph index, the advance (integer
// part and optional fractional part in 1/64 pixel), and the frame as
// "l t w h".  Each following line holds one bitmap row, two hex
// digits per pixel, with zero pixels written as two spaces and
// trailing blanks removed.

var fileHeaderKeys = []string{
	"file", "name", "upem", "ascent", "descent",
	"size", "font_glyphs", "num_glyphs",
}

// maxImageSize bounds the accepted glyph image dimensions, as a
// guard against corrupted files.
const maxImageSize = 1 << 14

var glyphHeaderRe = regexp.MustCompile(
	`^>\s*glyph:\s*(\d+)\s*;\s*(\d+)(?:\s*,\s*(\d+))?\s*;\s*(-?\d+)\s+(-?\d+)\s+(\d+)\s+(\d+)\s*$`)

// lineReader returns the input one line at a time, with comments and
// blank lines removed.
type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func newLineReader(r io.Reader) *lineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1024*1024)
	return &lineReader{scanner: scanner}
}

func (l *lineReader) Next() (string, error) {
	for l.scanner.Scan() {
		l.line++
		line := l.scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimRight(line, " \t\r")
		if line != "" {
			return line, nil
		}
	}
	if err := l.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.ErrUnexpectedEOF
}

func (l *lineReader) errf(format string, a ...interface{}) error {
	return fmt.Errorf("line %d: %s", l.line, fmt.Sprintf(format, a...))
}

// keyVal reads the next line and returns the value of a "> key: val"
// record for the given key.
func (l *lineReader) keyVal(key string) (string, error) {
	line, err := l.Next()
	if err != nil {
		return "", err
	}
	rest, ok := strings.CutPrefix(line, ">")
	if !ok {
		return "", l.errf("expected %q record in %q", key, line)
	}
	rest = strings.TrimSpace(rest)
	rest, ok = strings.CutPrefix(rest, key+":")
	if !ok {
		return "", l.errf("expected %q record in %q", key, line)
	}
	return strings.TrimSpace(rest), nil
}

func (l *lineReader) keyInt(key string) (int, error) {
	val, err := l.keyVal(key)
	if err != nil {
		return 0, err
	}
	x, err := strconv.Atoi(val)
	if err != nil {
		return 0, l.errf("%s: %v", key, err)
	}
	return x, nil
}

func readFileHeader(l *lineReader) (*FileHeader, error) {
	header := &FileHeader{}
	fields := []interface{}{
		&header.File, &header.Name, &header.Upem, &header.Ascent,
		&header.Descent, &header.Size, &header.FontGlyphs, &header.NumGlyphs,
	}
	for i, key := range fileHeaderKeys {
		switch ptr := fields[i].(type) {
		case *string:
			val, err := l.keyVal(key)
			if err != nil {
				return nil, err
			}
			*ptr = val
		case *int:
			val, err := l.keyInt(key)
			if err != nil {
				return nil, err
			}
			*ptr = val
		}
	}
	return header, nil
}

func readImage(l *lineReader, header *FileHeader) (*Image, error) {
	line, err := l.Next()
	if err != nil {
		return nil, err
	}
	m := glyphHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return nil, l.errf("malformed glyph header %q", line)
	}

	num := make([]int, len(m))
	for i, s := range m[1:] {
		if s == "" {
			continue
		}
		num[i+1], err = strconv.Atoi(s)
		if err != nil {
			return nil, l.errf("glyph header: %v", err)
		}
	}
	im := &Image{
		Header: header,
		Index:  num[1],
		Adv:    Advance{Int: num[2], Frac: num[3]},
		Frame:  Frame{L: num[4], T: num[5], W: num[6], H: num[7]},
	}
	if im.Frame.W > maxImageSize || im.Frame.H > maxImageSize {
		return nil, l.errf("glyph image larger than %d pixels", maxImageSize)
	}
	im.Data = make([]byte, im.Frame.W*im.Frame.H)

	for row := 0; row < im.Frame.H; row++ {
		line, err := l.Next()
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(line, ":") {
			return nil, l.errf("expected pixel row, got %q", line)
		}
		rowData := line[1:]
		if len(rowData) > 2*im.Frame.W {
			return nil, l.errf("row has more than %d values", im.Frame.W)
		}
		base := row * im.Frame.W
		for idx := 0; 2*idx < len(rowData); idx++ {
			pix := rowData[2*idx:]
			if len(pix) > 2 {
				pix = pix[:2]
			}
			if pix == "  " {
				continue
			}
			val, err := strconv.ParseUint(string(pix), 16, 8)
			if err != nil {
				return nil, l.errf("bad pixel value %q", pix)
			}
			im.Data[base+idx] = byte(val)
		}
	}
	return im, nil
}

// ReadCollection reads a glyph image file.
func ReadCollection(r io.Reader) (*Collection, error) {
	l := newLineReader(r)
	header, err := readFileHeader(l)
	if err != nil {
		return nil, err
	}
	images := make(map[int]*Image, header.NumGlyphs)
	for i := 0; i < header.NumGlyphs; i++ {
		im, err := readImage(l, header)
		if err != nil {
			return nil, err
		}
		images[im.Index] = im
	}
	return &Collection{Header: header, Images: images}, nil
}

// ReadCollectionFile reads the glyph image file with the given name.
func ReadCollectionFile(fname string) (*Collection, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	c, err := ReadCollection(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return c, nil
}

func writeFileHeader(w io.Writer, header *FileHeader) error {
	vals := []interface{}{
		header.File, header.Name, header.Upem, header.Ascent,
		header.Descent, header.Size, header.FontGlyphs, header.NumGlyphs,
	}
	for i, key := range fileHeaderKeys {
		_, err := fmt.Fprintf(w, "> %s: %v\n", key, vals[i])
		if err != nil {
			return err
		}
	}
	return nil
}

// pixelRows formats the bitmap as hex rows, one string per row,
// without the leading colon.
func (im *Image) pixelRows() []string {
	rows := make([]string, im.Frame.H)
	buf := &strings.Builder{}
	idx := 0
	for row := range rows {
		buf.Reset()
		for x := 0; x < im.Frame.W; x++ {
			val := im.Data[idx]
			idx++
			if val == 0 {
				buf.WriteString("  ")
			} else {
				fmt.Fprintf(buf, "%02x", val)
			}
		}
		rows[row] = strings.TrimRight(buf.String(), " ")
	}
	return rows
}

func writeImage(w io.Writer, im *Image, headerOnly bool) error {
	adv := strconv.Itoa(im.Adv.Int)
	if im.Adv.Frac != 0 {
		adv += "," + strconv.Itoa(im.Adv.Frac)
	}
	_, err := fmt.Fprintf(w, "> glyph: %d;%s;%d %d %d %d\n",
		im.Index, adv, im.Frame.L, im.Frame.T, im.Frame.W, im.Frame.H)
	if err != nil {
		return err
	}
	if headerOnly {
		return nil
	}
	for _, row := range im.pixelRows() {
		if _, err := fmt.Fprintln(w, ":"+row); err != nil {
			return err
		}
	}
	return nil
}

// Write writes the collection in the glyph image file format.
// Glyphs are written in index order.
func (c *Collection) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := writeFileHeader(bw, c.Header); err != nil {
		return err
	}
	for idx := 0; idx <= c.MaxIndex(); idx++ {
		im, ok := c.Images[idx]
		if !ok {
			continue
		}
		if err := writeImage(bw, im, false); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes the collection to the named file.
func (c *Collection) WriteFile(fname string) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = c.Write(fd)
	if err2 := fd.Close(); err == nil {
		err = err2
	}
	return err
}
