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

package sfntfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testCollection() *Collection {
	shared := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	f1 := &Font{ScalerType: ScalerTrueType}
	f1.Set("head", testHead())
	f1.Set("name", makeNameTable("Family-Regular"))
	f1.Set("glyf", shared)

	f2 := &Font{ScalerType: ScalerTrueType}
	f2.Set("head", testHead())
	f2.Set("name", makeNameTable("Family-Bold"))
	f2.Set("glyf", shared)

	return &Collection{Version: TTCVersion1, Fonts: []*Font{f1, f2}}
}

func TestCollectionRoundTrip(t *testing.T) {
	c1 := testCollection()
	c2, err := DecodeCollection(c1.Encode())
	if err != nil {
		t.Fatal(err)
	}

	if c2.Version != c1.Version {
		t.Errorf("version: got 0x%08X, want 0x%08X", c2.Version, c1.Version)
	}
	if len(c2.Fonts) != 2 {
		t.Fatalf("got %d fonts, want 2", len(c2.Fonts))
	}
	for i, font := range c1.Fonts {
		for _, tbl := range font.Tables {
			if !bytes.Equal(c2.Fonts[i].Get(tbl.Tag), tbl.Data) {
				t.Errorf("font %d table %q changed", i, tbl.Tag)
			}
		}
	}
}

func TestCollectionSharing(t *testing.T) {
	c, err := DecodeCollection(testCollection().Encode())
	if err != nil {
		t.Fatal(err)
	}

	g1 := c.Fonts[0].Get("glyf")
	g2 := c.Fonts[1].Get("glyf")
	if &g1[0] != &g2[0] {
		t.Error("identical glyf tables are not shared")
	}
	n1 := c.Fonts[0].Get("name")
	n2 := c.Fonts[1].Get("name")
	if &n1[0] == &n2[0] {
		t.Error("different name tables are shared")
	}

	// the shared table must be stored only once
	data := testCollection().Encode()
	if n := bytes.Count(data, []byte{1, 2, 3, 4, 5, 6, 7, 8}); n != 1 {
		t.Errorf("shared table stored %d times", n)
	}
}

func TestCollectionV2(t *testing.T) {
	c1 := testCollection()
	c1.Version = TTCVersion2
	c2, err := DecodeCollection(c1.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if c2.Version != TTCVersion2 {
		t.Errorf("version: got 0x%08X", c2.Version)
	}
	if len(c2.Fonts) != 2 {
		t.Fatalf("got %d fonts, want 2", len(c2.Fonts))
	}
}

func TestCollectionSingleFont(t *testing.T) {
	c, err := DecodeCollection(testFont().Encode())
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Fonts) != 1 {
		t.Fatalf("got %d fonts, want 1", len(c.Fonts))
	}
}

func TestNames(t *testing.T) {
	c := testCollection()
	want := []string{"Family-Regular", "Family-Bold"}
	if d := cmp.Diff(want, c.Names()); d != "" {
		t.Error(d)
	}

	c.Fonts[0].Drop("name")
	if got := c.Names()[0]; got != "<unknown ttf>" {
		t.Errorf("got %q", got)
	}
}

func TestMemberFileName(t *testing.T) {
	c := testCollection()
	if got := c.MemberFileName(1); got != "Family-Bold.ttf" {
		t.Errorf("got %q", got)
	}

	c.Fonts[0].Set("name", makeNameTable("Family"))
	if got := c.MemberFileName(0); got != "Family-Regular.ttf" {
		t.Errorf("got %q", got)
	}

	c.Fonts[0].ScalerType = ScalerCFF
	if got := c.MemberFileName(0); got != "Family-Regular.otf" {
		t.Errorf("got %q", got)
	}
}

func TestDump(t *testing.T) {
	c, err := DecodeCollection(testCollection().Encode())
	if err != nil {
		t.Fatal(err)
	}

	buf := &bytes.Buffer{}
	if err := c.Dump(buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.Contains(out, "font 0: Family-Regular") {
		t.Errorf("missing member header in %q", out)
	}
	if !strings.Contains(out, "@0.glyf") {
		t.Errorf("missing sharing marker in %q", out)
	}
}
