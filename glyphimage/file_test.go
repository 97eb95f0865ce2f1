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
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const testFile = `# rendered by glyph-image
> file: test.ttf
> name: Test Font
> upem: 1000
> ascent: 800
> descent: 200
> size: 100
> font_glyphs: 4
> num_glyphs: 3

> glyph: 0;50;0 -2 2 2
:c0c0
:c0c0
> glyph: 1;10,32;1 -2 3 2
:  ff20
:ff
> glyph: 3;0;0 0 0 0
`

func TestReadCollection(t *testing.T) {
	c, err := ReadCollection(strings.NewReader(testFile))
	if err != nil {
		t.Fatal(err)
	}

	if d := cmp.Diff(testHeader, c.Header,
		cmpopts.IgnoreFields(FileHeader{}, "NumGlyphs")); d != "" {
		t.Error(d)
	}
	if c.Header.NumGlyphs != 3 {
		t.Errorf("num_glyphs is %d", c.Header.NumGlyphs)
	}
	if len(c.Images) != 3 {
		t.Fatalf("got %d images", len(c.Images))
	}

	g1 := c.Images[1]
	if g1.Adv != (Advance{Int: 10, Frac: 32}) {
		t.Errorf("advance is %v", g1.Adv)
	}
	if g1.Frame != (Frame{1, -2, 3, 2}) {
		t.Errorf("frame is %v", g1.Frame)
	}
	want := []byte{
		0x00, 0xff, 0x20,
		0xff, 0x00, 0x00,
	}
	if d := cmp.Diff(want, g1.Data); d != "" {
		t.Error(d)
	}

	if g3 := c.Images[3]; len(g3.Data) != 0 {
		t.Error("empty glyph has data")
	}
}

func TestRoundTrip(t *testing.T) {
	c, err := ReadCollection(strings.NewReader(testFile))
	if err != nil {
		t.Fatal(err)
	}

	buf := &bytes.Buffer{}
	if err := c.Write(buf); err != nil {
		t.Fatal(err)
	}

	c2, err := ReadCollection(buf)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(c, c2, cmpopts.EquateEmpty()); d != "" {
		t.Error(d)
	}
}

func TestReadErrors(t *testing.T) {
	cases := []string{
		"",
		"> file: x\n",
		strings.Replace(testFile, "> glyph: 0;50;0 -2 2 2", "> glyph: x", 1),
		strings.Replace(testFile, ":c0c0\n:c0c0", ":c0c0", 1),
		strings.Replace(testFile, ":c0c0\n:c0c0", ":c0c0c0\n:c0c0", 1),
		strings.Replace(testFile, "> upem: 1000", "> upem: many", 1),
	}
	for i, in := range cases {
		if _, err := ReadCollection(strings.NewReader(in)); err == nil {
			t.Errorf("%d: expected error", i)
		}
	}
}

func FuzzReadCollection(f *testing.F) {
	f.Add(testFile)
	f.Add("> file: a\n> name: b\n> upem: 16\n> ascent: 12\n> descent: 4\n" +
		"> size: 16\n> font_glyphs: 1\n> num_glyphs: 1\n" +
		"> glyph: 0;16;0 -1 1 1\n:ff\n")
	f.Fuzz(func(t *testing.T, in string) {
		c, err := ReadCollection(strings.NewReader(in))
		if err != nil {
			return
		}
		if len(c.Images) != c.Header.NumGlyphs {
			// duplicate glyph indices cannot round-trip
			return
		}

		buf := &bytes.Buffer{}
		if err := c.Write(buf); err != nil {
			t.Fatal(err)
		}
		c2, err := ReadCollection(buf)
		if err != nil {
			t.Fatalf("re-read failed: %v", err)
		}
		if d := cmp.Diff(c, c2, cmpopts.EquateEmpty()); d != "" {
			t.Error(d)
		}
	})
}
